package actors

import (
	"context"
	"errors"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/peppone-choi/opensamguk-sub002/internal/turn"
)

type State int

const (
	None State = iota
	Online
	Offline
	Stopping
)

var errNilRequest = errors.New("nil request")
var errNotOnline = errors.New("world actor not online")

// WorldTurnActor 单个世界的回合执行者。邮箱天然串行，
// 同一世界的两次推进不会交叠。
type WorldTurnActor struct {
	state   State
	worldID WorldID
	service *turn.Service
}

func NewWorldTurnActor(worldID WorldID, service *turn.Service) *WorldTurnActor {
	return &WorldTurnActor{
		state:   None,
		worldID: worldID,
		service: service,
	}
}

func (p *WorldTurnActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Online
	case *actor.Stopping:
		p.state = Stopping
	case *actor.Stopped:
		p.state = Offline
	case *actor.Restarting:
		p.state = None
	case *TickWorld:
		if msg == nil || msg.World == nil {
			ctx.Respond(&TickResult{WorldID: p.worldID, Err: errNilRequest})
			return
		}
		if p.state != Online {
			ctx.Respond(&TickResult{WorldID: p.worldID, Err: errNotOnline})
			return
		}

		var err error
		if msg.World.Realtime {
			err = p.service.ProcessRealtime(context.Background(), msg.World)
		} else {
			err = p.service.ProcessWorld(context.Background(), msg.World)
		}
		ctx.Respond(&TickResult{WorldID: p.worldID, Err: err})
	}
}
