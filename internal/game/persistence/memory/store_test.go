package memory

import (
	"context"
	"testing"
	"time"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/command/registry"
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/turn"
)

// 单机模式的全链路：守护进程 → 直连派发 → 回合服务 → 内存存储。
func newFullStack(store *Store, now func() time.Time) *turn.Daemon {
	svc := turn.NewService(turn.ServiceConfig{
		Worlds:       store,
		Store:        store,
		GeneralQueue: store,
		NationQueue:  store,
		Events:       turn.NewEventDispatcher(store, store),
		Executor:     command.NewExecutor(store, registry.New()),
		Snapshots:    store,
		Collaborators: []turn.Collaborator{
			turn.NewMaintenanceCollaborator(store),
		},
		Now: now,
	})
	return turn.NewDaemon(store, &turn.DirectDispatcher{Service: svc}, time.Second)
}

func seedWorld(store *Store, id domain.WorldID, base time.Time) {
	store.AddWorld(&domain.World{
		ID: id, Name: "mem", HiddenSeed: "mem-seed",
		Year: 184, Month: 1, StartYear: 180,
		TickSeconds: 120, GatewayActive: true,
		UpdatedAt: base,
	})
	store.AddCity(&domain.City{
		ID: domain.CityID(id*100 + 1), WorldID: id, Name: "Chengdu", NationID: 1,
		Pop: 50000, PopMax: 100000,
		Agri: 300, AgriMax: 1000, Comm: 300, CommMax: 1000, Secu: 300, SecuMax: 1000,
		Def: 500, DefMax: 1000, Wall: 500, WallMax: 1000,
		Trust: 60, SupplyState: 1,
	})
	store.AddNation(&domain.Nation{
		ID: 1, WorldID: id, Name: "Shu", Level: 3, Capital: domain.CityID(id*100 + 1),
		Gold: 10000, Rice: 10000,
	})
	store.AddGeneral(&domain.General{
		ID: domain.GeneralID(id*1000 + 1), WorldID: id, Name: "general",
		NationID: 1, CityID: domain.CityID(id*100 + 1),
		NpcState:   domain.NpcNone,
		Leadership: 60, Strength: 70, Intel: 50, Politics: 50, Charm: 50,
		Gold: 5000, Rice: 5000,
		Crew: 100, Train: 30, Atmos: 50,
		TurnTime: base.Add(-time.Hour),
	})
}

func TestMemoryStore_单机全链路跑一个回合(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	seedWorld(store, 1, base)
	store.EnqueueGeneralTurn(1, 1001, "train", nil)

	now := base.Add(120 * time.Second)
	daemon := newFullStack(store, func() time.Time { return now })

	if !daemon.RunOnce(context.Background()) {
		t.Fatal("RunOnce must dispatch")
	}

	w, _ := store.WorldByID(context.Background(), 1)
	if w.Year != 184 || w.Month != 2 {
		t.Fatalf("expect 184/2, got %d/%d", w.Year, w.Month)
	}
	g, _ := store.GeneralByID(1, 1001)
	if g.Train != 33 {
		t.Fatalf("expect train 33 after drill, got %d", g.Train)
	}
	if n := store.PendingGeneralTurns(1, 1001); n != 0 {
		t.Fatalf("queue must be drained, %d left", n)
	}
	if len(store.Snapshots) != 1 {
		t.Fatalf("expect 1 snapshot, got %d", len(store.Snapshots))
	}
}

func TestMemoryStore_关闭的世界不会被扫到(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	seedWorld(store, 1, base)
	seedWorld(store, 2, base)
	w2, _ := store.WorldByID(context.Background(), 2)
	w2.GatewayActive = false

	now := base.Add(120 * time.Second)
	daemon := newFullStack(store, func() time.Time { return now })
	daemon.RunOnce(context.Background())

	w1, _ := store.WorldByID(context.Background(), 1)
	if w1.Month != 2 {
		t.Fatalf("open world must tick, got month %d", w1.Month)
	}
	if w2.Month != 1 {
		t.Fatalf("closed world must stay at month 1, got %d", w2.Month)
	}
}

func TestMemoryStore_队列先进先出(t *testing.T) {
	store := NewStore()
	first := store.EnqueueGeneralTurn(1, 7, "train", nil)
	store.EnqueueGeneralTurn(1, 7, "rest", nil)

	got, err := store.NextGeneralTurn(1, 7)
	if err != nil || got == nil {
		t.Fatalf("NextGeneralTurn: %v %v", got, err)
	}
	if got.ID != first.ID || got.Action != "train" {
		t.Fatalf("expect first queued row, got %+v", got)
	}

	if err := store.ConsumeGeneralTurn(got.ID); err != nil {
		t.Fatalf("ConsumeGeneralTurn: %v", err)
	}
	got, _ = store.NextGeneralTurn(1, 7)
	if got == nil || got.Action != "rest" {
		t.Fatalf("expect second row after consume, got %+v", got)
	}

	if err := store.DiscardGeneralTurns(1, 7); err != nil {
		t.Fatalf("DiscardGeneralTurns: %v", err)
	}
	if n := store.PendingGeneralTurns(1, 7); n != 0 {
		t.Fatalf("discard must empty the queue, %d left", n)
	}
}
