package actors

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/turn"
)

const defaultAskTimeout = 5 * time.Minute

// ActorDispatcher 把回合派发送进 actor 体系，实现调度器的
// WorldDispatcher。追帧可能很长，问询超时给得宽。
type ActorDispatcher struct {
	system     *actor.ActorSystem
	manager    *actor.PID
	askTimeout time.Duration
}

var _ turn.WorldDispatcher = (*ActorDispatcher)(nil)

func NewActorDispatcher(system *actor.ActorSystem, service *turn.Service, askTimeout time.Duration) *ActorDispatcher {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewManagerActor(service)
	})
	pid := system.Root.Spawn(props)
	return &ActorDispatcher{
		system:     system,
		manager:    pid,
		askTimeout: askTimeout,
	}
}

func (d *ActorDispatcher) DispatchWorld(ctx context.Context, world *domain.World) error {
	future := d.system.Root.RequestFuture(d.manager, &TickWorld{World: world}, d.askTimeout)
	res, err := future.Result()
	if err != nil {
		return err
	}
	if tr, ok := res.(*TickResult); ok {
		return tr.Err
	}
	return nil
}

// Shutdown 停掉管理 actor，在跑的回合会先跑完。
func (d *ActorDispatcher) Shutdown() {
	d.system.Root.Stop(d.manager)
}
