package turn

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/logs"
)

// 事件触发条件
const (
	condAlwaysTrue  = "always_true"
	condAlwaysFalse = "always_false"
	condDate        = "date"       // 指定年月当月触发
	condDateAfter   = "date_after" // 指定年月起每月触发
	condMonth       = "month"      // 每年指定月份触发
)

// 事件动作
const (
	actionGrantResource = "grantResource"
	actionBoostTech     = "boostTech"
	actionLog           = "log"
)

// EventDispatcher 世界脚本事件。单个事件失败只记日志，
// 不影响同时机的其他事件。
type EventDispatcher struct {
	events EventRepo
	store  EntityStore
}

func NewEventDispatcher(events EventRepo, store EntityStore) *EventDispatcher {
	return &EventDispatcher{events: events, store: store}
}

func (d *EventDispatcher) Dispatch(world *domain.World, phase string) {
	list, err := d.events.EventsByPhase(world.ID, phase)
	if err != nil {
		logs.Error("load turn events failed",
			zap.Int64("worldId", int64(world.ID)),
			zap.String("phase", phase),
			zap.Error(err))
		return
	}

	for _, ev := range list {
		if !matchCondition(world, ev.Arg) {
			continue
		}
		if err := d.run(world, ev); err != nil {
			logs.Error("turn event failed",
				zap.Int64("worldId", int64(world.ID)),
				zap.Int64("eventId", ev.ID),
				zap.String("action", ev.Action),
				zap.Error(err))
		}
	}
}

func matchCondition(world *domain.World, arg map[string]any) bool {
	cond, _ := argString(arg, "condition")
	switch cond {
	case "", condAlwaysTrue:
		return true
	case condAlwaysFalse:
		return false
	case condDate:
		y, _ := argInt(arg, "year")
		m, _ := argInt(arg, "month")
		return world.Year == y && world.Month == m
	case condDateAfter:
		y, _ := argInt(arg, "year")
		m, _ := argInt(arg, "month")
		return world.Year*100+world.Month >= y*100+m
	case condMonth:
		m, _ := argInt(arg, "month")
		return world.Month == m
	default:
		return false
	}
}

func (d *EventDispatcher) run(world *domain.World, ev *domain.TurnEvent) error {
	switch ev.Action {
	case actionGrantResource:
		return d.grantResource(world, ev.Arg)
	case actionBoostTech:
		return d.boostTech(world, ev.Arg)
	case actionLog:
		msg, _ := argString(ev.Arg, "message")
		logs.Info("turn event",
			zap.Int64("worldId", int64(world.ID)),
			zap.String("message", msg))
		return nil
	default:
		return fmt.Errorf("unknown event action: %s", ev.Action)
	}
}

func (d *EventDispatcher) grantResource(world *domain.World, arg map[string]any) error {
	nationID, ok := argInt(arg, "nationId")
	if !ok {
		return fmt.Errorf("grantResource: missing nationId")
	}
	nation, err := d.store.NationByID(world.ID, domain.NationID(nationID))
	if err != nil {
		return err
	}
	if nation == nil {
		return fmt.Errorf("grantResource: nation %d not found", nationID)
	}
	gold, _ := argInt(arg, "gold")
	rice, _ := argInt(arg, "rice")
	nation.Gold += int64(gold)
	nation.Rice += int64(rice)
	return d.store.SaveNation(nation)
}

func (d *EventDispatcher) boostTech(world *domain.World, arg map[string]any) error {
	nationID, ok := argInt(arg, "nationId")
	if !ok {
		return fmt.Errorf("boostTech: missing nationId")
	}
	nation, err := d.store.NationByID(world.ID, domain.NationID(nationID))
	if err != nil {
		return err
	}
	if nation == nil {
		return fmt.Errorf("boostTech: nation %d not found", nationID)
	}
	amount, _ := argInt(arg, "amount")
	nation.Tech += float64(amount)
	return d.store.SaveNation(nation)
}

func argString(arg map[string]any, key string) (string, bool) {
	if arg == nil {
		return "", false
	}
	s, ok := arg[key].(string)
	return s, ok
}

// argInt JSON 解码出来的数字可能是 float64。
func argInt(arg map[string]any, key string) (int, bool) {
	if arg == nil {
		return 0, false
	}
	switch v := arg[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
