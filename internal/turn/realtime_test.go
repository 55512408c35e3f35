package turn

import (
	"context"
	"testing"
	"time"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
)

func TestProcessRealtime_指令点回蓝封顶(t *testing.T) {
	f := newTurnFixture()
	f.world.Realtime = true
	low := f.addGeneral(1, domain.NpcNone)
	low.CommandPoints = 10
	full := f.addGeneral(2, domain.NpcNone)
	full.CommandPoints = 100

	if err := f.service.ProcessRealtime(context.Background(), f.world); err != nil {
		t.Fatalf("ProcessRealtime: %v", err)
	}
	if low.CommandPoints != 11 {
		t.Fatalf("expect 11 points, got %d", low.CommandPoints)
	}
	if full.CommandPoints != 100 {
		t.Fatalf("points must cap at 100, got %d", full.CommandPoints)
	}
}

func TestProcessRealtime_到点命令收割并清空结束时刻(t *testing.T) {
	f := newTurnFixture()
	f.world.Realtime = true
	g := f.addGeneral(1, domain.NpcNone)
	done := f.base.Add(-time.Minute)
	g.CommandEndTime = &done
	f.store.enqueueGeneral(1, 1, "train", nil)

	if err := f.service.ProcessRealtime(context.Background(), f.world); err != nil {
		t.Fatalf("ProcessRealtime: %v", err)
	}
	if g.CommandEndTime != nil {
		t.Fatal("finished command end time must be cleared")
	}
	if g.Train != 33 {
		t.Fatalf("harvested command must execute, train=%d", g.Train)
	}
}

func TestProcessRealtime_未到点的命令不收割(t *testing.T) {
	f := newTurnFixture()
	f.world.Realtime = true
	g := f.addGeneral(1, domain.NpcNone)
	pending := f.base.Add(time.Hour)
	g.CommandEndTime = &pending
	f.store.enqueueGeneral(1, 1, "train", nil)

	if err := f.service.ProcessRealtime(context.Background(), f.world); err != nil {
		t.Fatalf("ProcessRealtime: %v", err)
	}
	if g.CommandEndTime == nil {
		t.Fatal("pending command must keep its end time")
	}
	if g.Train != 30 {
		t.Fatalf("pending command must not execute, train=%d", g.Train)
	}
}

func TestScheduleRealtimeCommand_点数不足拒绝(t *testing.T) {
	f := newTurnFixture()
	g := f.addGeneral(1, domain.NpcNone)
	g.CommandPoints = 5

	if f.service.ScheduleRealtimeCommand(g, time.Minute, 10) {
		t.Fatal("insufficient points must be rejected")
	}
	if g.CommandPoints != 5 || g.CommandEndTime != nil {
		t.Fatalf("rejected schedule must not mutate, points=%d", g.CommandPoints)
	}

	if !f.service.ScheduleRealtimeCommand(g, time.Minute, 3) {
		t.Fatal("affordable schedule must succeed")
	}
	if g.CommandPoints != 2 {
		t.Fatalf("expect 2 points left, got %d", g.CommandPoints)
	}
	want := f.base.Add(time.Minute)
	if g.CommandEndTime == nil || !g.CommandEndTime.Equal(want) {
		t.Fatalf("expect end time %v, got %v", want, g.CommandEndTime)
	}
}
