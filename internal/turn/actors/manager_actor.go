package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/turn"
)

type WorldID = domain.WorldID

// ManagerActor 按世界 ID 懒生成子 actor 并转发回合消息，
// 保证同一世界不会并发推进。
type ManagerActor struct {
	service     *turn.Service
	worldActors map[WorldID]*actor.PID
}

func NewManagerActor(service *turn.Service) *ManagerActor {
	return &ManagerActor{
		service:     service,
		worldActors: make(map[WorldID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	req, ok := ctx.Message().(*TickWorld)
	if !ok {
		return
	}
	if req == nil || req.World == nil {
		ctx.Respond(&TickResult{Err: errNilRequest})
		return
	}

	ctx.Forward(m.getOrSpawn(ctx, req.World.ID))
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, worldID WorldID) *actor.PID {
	if pid, ok := m.worldActors[worldID]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewWorldTurnActor(worldID, m.service)
	})
	pid := ctx.Spawn(props)
	m.worldActors[worldID] = pid
	return pid
}
