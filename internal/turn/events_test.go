package turn

import (
	"testing"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
)

func TestEventDispatcher_日期条件当月触发发放资源(t *testing.T) {
	f := newTurnFixture()
	f.store.events = append(f.store.events, &domain.TurnEvent{
		ID: 1, WorldID: 1, Phase: domain.EventPreMonth, Action: "grantResource",
		Arg: map[string]any{
			"condition": "date", "year": float64(184), "month": float64(1),
			"nationId": float64(1), "gold": float64(500), "rice": float64(300),
		},
	})

	d := NewEventDispatcher(f.store, f.store)
	d.Dispatch(f.world, domain.EventPreMonth)

	n := f.store.nations[1]
	if n.Gold != 10500 || n.Rice != 10300 {
		t.Fatalf("expect 10500/10300, got %d/%d", n.Gold, n.Rice)
	}

	// 日期不匹配时不触发
	f.world.Month = 2
	d.Dispatch(f.world, domain.EventPreMonth)
	if n.Gold != 10500 {
		t.Fatalf("mismatched date must not fire, gold=%d", n.Gold)
	}
}

func TestEventDispatcher_时机不同的事件互不串扰(t *testing.T) {
	f := newTurnFixture()
	f.store.events = append(f.store.events, &domain.TurnEvent{
		ID: 1, WorldID: 1, Phase: domain.EventMonth, Action: "boostTech",
		Arg: map[string]any{"nationId": float64(1), "amount": float64(50)},
	})

	d := NewEventDispatcher(f.store, f.store)
	d.Dispatch(f.world, domain.EventPreMonth)
	if f.store.nations[1].Tech != 0 {
		t.Fatalf("PRE_MONTH dispatch must skip MONTH events, tech=%v", f.store.nations[1].Tech)
	}

	d.Dispatch(f.world, domain.EventMonth)
	if f.store.nations[1].Tech != 50 {
		t.Fatalf("expect tech 50, got %v", f.store.nations[1].Tech)
	}
}

func TestEventDispatcher_单个事件失败不影响后续(t *testing.T) {
	f := newTurnFixture()
	f.store.events = append(f.store.events, &domain.TurnEvent{
		ID: 1, WorldID: 1, Phase: domain.EventMonth, Priority: 10, Action: "noSuchAction",
	})
	f.store.events = append(f.store.events, &domain.TurnEvent{
		ID: 2, WorldID: 1, Phase: domain.EventMonth, Action: "grantResource",
		Arg: map[string]any{"nationId": float64(1), "gold": float64(100)},
	})

	d := NewEventDispatcher(f.store, f.store)
	d.Dispatch(f.world, domain.EventMonth)
	if f.store.nations[1].Gold != 10100 {
		t.Fatalf("later event must still run, gold=%d", f.store.nations[1].Gold)
	}
}

func TestEventDispatcher_指定年月起每月触发(t *testing.T) {
	f := newTurnFixture()
	f.store.events = append(f.store.events, &domain.TurnEvent{
		ID: 1, WorldID: 1, Phase: domain.EventMonth, Action: "grantResource",
		Arg: map[string]any{
			"condition": "date_after", "year": float64(184), "month": float64(6),
			"nationId": float64(1), "gold": float64(100),
		},
	})

	d := NewEventDispatcher(f.store, f.store)
	d.Dispatch(f.world, domain.EventMonth) // 184/1，未到
	if f.store.nations[1].Gold != 10000 {
		t.Fatalf("before start date must not fire, gold=%d", f.store.nations[1].Gold)
	}

	f.world.Month = 6
	d.Dispatch(f.world, domain.EventMonth)
	f.world.Month = 7
	d.Dispatch(f.world, domain.EventMonth)
	if f.store.nations[1].Gold != 10200 {
		t.Fatalf("expect two firings after start date, gold=%d", f.store.nations[1].Gold)
	}
}
