package turn

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/logs"
)

// 调度器状态机：IDLE → RUNNING → FLUSHING → IDLE，外加运维手动的 PAUSED。
type DaemonState int32

const (
	StateIdle DaemonState = iota
	StateRunning
	StateFlushing
	StatePaused
	StateStopping
)

func (s DaemonState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateFlushing:
		return "FLUSHING"
	case StatePaused:
		return "PAUSED"
	case StateStopping:
		return "STOPPING"
	default:
		return "UNKNOWN"
	}
}

// WorldDispatcher 一个世界的回合派发。Actor 版把世界隔离到各自的
// 邮箱里，直连版在调用方 goroutine 里同步执行。
type WorldDispatcher interface {
	DispatchWorld(ctx context.Context, world *domain.World) error
}

// DirectDispatcher 不经过 actor 的直连派发，测试和单机部署用。
type DirectDispatcher struct {
	Service *Service
}

func (d *DirectDispatcher) DispatchWorld(ctx context.Context, world *domain.World) error {
	if world.Realtime {
		return d.Service.ProcessRealtime(ctx, world)
	}
	return d.Service.ProcessWorld(ctx, world)
}

// Daemon 固定间隔扫一遍所有开放世界。暂停只拦住新回合的开始，
// 在跑的回合不会被打断。
type Daemon struct {
	worlds   WorldRepo
	dispatch WorldDispatcher
	interval time.Duration

	state  atomic.Int32
	runMu  sync.Mutex
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewDaemon(worlds WorldRepo, dispatch WorldDispatcher, interval time.Duration) *Daemon {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Daemon{
		worlds:   worlds,
		dispatch: dispatch,
		interval: interval,
	}
}

func (d *Daemon) State() DaemonState {
	return DaemonState(d.state.Load())
}

// Start 启动固定延迟循环。上一轮跑完才开始计下一轮的间隔，
// 回合多长都不会自我重入。
func (d *Daemon) Start(ctx context.Context) {
	d.stopCh = make(chan struct{})
	d.doneCh = make(chan struct{})
	go func() {
		defer close(d.doneCh)
		timer := time.NewTimer(d.interval)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-d.stopCh:
				return
			case <-timer.C:
				d.RunOnce(ctx)
				timer.Reset(d.interval)
			}
		}
	}()
	logs.Info("turn daemon started", zap.Duration("interval", d.interval))
}

// Stop 停止调度循环并等待在跑的一轮结束。
func (d *Daemon) Stop() {
	if d.stopCh == nil {
		return
	}
	d.state.Store(int32(StateStopping))
	close(d.stopCh)
	<-d.doneCh
	d.stopCh = nil
	logs.Info("turn daemon stopped")
}

// Pause 暂停调度。幂等。
func (d *Daemon) Pause() {
	d.state.Store(int32(StatePaused))
	logs.Info("turn daemon paused")
}

// Resume 恢复调度。只在暂停态下有效。
func (d *Daemon) Resume() {
	d.state.CompareAndSwap(int32(StatePaused), int32(StateIdle))
	logs.Info("turn daemon resumed")
}

// RunOnce 跑一轮完整的世界扫描，运维手动触发也走这里。
// 暂停或已在跑时直接返回 false。
func (d *Daemon) RunOnce(ctx context.Context) bool {
	if DaemonState(d.state.Load()) == StatePaused {
		return false
	}
	if !d.runMu.TryLock() {
		return false
	}
	defer d.runMu.Unlock()

	if !d.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return false
	}

	worlds, err := d.worlds.ActiveWorlds(ctx)
	if err != nil {
		logs.Error("load active worlds failed", zap.Error(err))
		d.state.CompareAndSwap(int32(StateRunning), int32(StateIdle))
		return false
	}

	for _, w := range worlds {
		d.dispatchOne(ctx, w)
	}

	// 落库在各世界派发内部完成
	d.state.CompareAndSwap(int32(StateRunning), int32(StateFlushing))
	d.state.CompareAndSwap(int32(StateFlushing), int32(StateIdle))
	return true
}

// dispatchOne 单个世界失败不连累其他世界。
func (d *Daemon) dispatchOne(ctx context.Context, w *domain.World) {
	defer func() {
		if r := recover(); r != nil {
			logs.Error("world dispatch panicked",
				zap.Int64("worldId", int64(w.ID)),
				zap.Any("panic", r))
		}
	}()
	if err := d.dispatch.DispatchWorld(ctx, w); err != nil {
		logs.Error("world dispatch failed",
			zap.Int64("worldId", int64(w.ID)),
			zap.Error(err))
	}
}
