package turn

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/logs"
)

const (
	maxCommandPoints   = 100
	pointRegenPerSweep = 1
)

// ProcessRealtime 实时世界不走月度回合，而是反复收割已完成的异步命令
// 并给指令点回蓝。由调度器每个周期调用一次。
func (s *Service) ProcessRealtime(ctx context.Context, world *domain.World) error {
	generals, err := s.store.GeneralsByWorld(world.ID)
	if err != nil {
		return err
	}

	now := s.now()
	env := s.buildEnv(world)

	for _, g := range generals {
		changed := false

		if g.CommandEndTime != nil && !g.CommandEndTime.After(now) {
			s.processGeneralSlot(ctx, world, env, g)
			g.CommandEndTime = nil
			changed = true
		}

		if g.CommandPoints < maxCommandPoints {
			g.CommandPoints += pointRegenPerSweep
			if g.CommandPoints > maxCommandPoints {
				g.CommandPoints = maxCommandPoints
			}
			changed = true
		}

		if changed {
			if err := s.store.SaveGeneral(g); err != nil {
				logs.Error("save realtime general failed", zap.Int64("generalId", int64(g.ID)), zap.Error(err))
			}
		}
	}
	return nil
}

// ScheduleRealtimeCommand 给实时武将挂上一条带倒计时的命令。
// 指令点不足时拒绝。
func (s *Service) ScheduleRealtimeCommand(g *domain.General, duration time.Duration, cost int) bool {
	if g.CommandPoints < cost {
		return false
	}
	g.CommandPoints -= cost
	end := s.now().Add(duration)
	g.CommandEndTime = &end
	return true
}
