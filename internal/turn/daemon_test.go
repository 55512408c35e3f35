package turn

import (
	"context"
	"testing"
	"time"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
)

type countingDispatcher struct {
	worlds []domain.WorldID
}

func (d *countingDispatcher) DispatchWorld(_ context.Context, w *domain.World) error {
	d.worlds = append(d.worlds, w.ID)
	return nil
}

func TestDaemon_RunOnce扫描所有开放世界(t *testing.T) {
	store := newStubStore()
	store.worlds[1] = &domain.World{ID: 1, GatewayActive: true}
	store.worlds[2] = &domain.World{ID: 2, GatewayActive: false}
	store.worlds[3] = &domain.World{ID: 3, GatewayActive: true}

	disp := &countingDispatcher{}
	d := NewDaemon(store, disp, time.Minute)

	if !d.RunOnce(context.Background()) {
		t.Fatal("RunOnce must run when idle")
	}
	if len(disp.worlds) != 2 || disp.worlds[0] != 1 || disp.worlds[1] != 3 {
		t.Fatalf("expect worlds [1 3], got %v", disp.worlds)
	}
	if d.State() != StateIdle {
		t.Fatalf("expect idle after run, got %s", d.State())
	}
}

func TestDaemon_暂停时RunOnce不派发(t *testing.T) {
	store := newStubStore()
	store.worlds[1] = &domain.World{ID: 1, GatewayActive: true}
	disp := &countingDispatcher{}
	d := NewDaemon(store, disp, time.Minute)

	d.Pause()
	if d.RunOnce(context.Background()) {
		t.Fatal("paused daemon must not run")
	}
	if len(disp.worlds) != 0 {
		t.Fatalf("no world should be dispatched, got %v", disp.worlds)
	}
	if d.State() != StatePaused {
		t.Fatalf("expect paused, got %s", d.State())
	}

	d.Resume()
	if !d.RunOnce(context.Background()) {
		t.Fatal("resumed daemon must run again")
	}
	if len(disp.worlds) != 1 {
		t.Fatalf("expect one dispatch after resume, got %v", disp.worlds)
	}
}

func TestDaemon_状态机字符串(t *testing.T) {
	cases := map[DaemonState]string{
		StateIdle:     "IDLE",
		StateRunning:  "RUNNING",
		StateFlushing: "FLUSHING",
		StatePaused:   "PAUSED",
		StateStopping: "STOPPING",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Fatalf("expect %s, got %s", want, s.String())
		}
	}
}

type panickyDispatcher struct{}

func (panickyDispatcher) DispatchWorld(context.Context, *domain.World) error {
	panic("world exploded")
}

func TestDaemon_单个世界崩溃不连累扫描(t *testing.T) {
	store := newStubStore()
	store.worlds[1] = &domain.World{ID: 1, GatewayActive: true}
	d := NewDaemon(store, panickyDispatcher{}, time.Minute)

	if !d.RunOnce(context.Background()) {
		t.Fatal("RunOnce must complete despite panic")
	}
	if d.State() != StateIdle {
		t.Fatalf("expect idle after panic recovery, got %s", d.State())
	}
}
