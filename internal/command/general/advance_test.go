package general

import (
	"testing"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

func marchBase() *command.Base {
	return &command.Base{
		General: &domain.General{
			ID: 1, WorldID: 1, NationID: 1, CityID: 10,
			Crew: 3000, CrewType: domain.CrewCavalry, Rice: 500, Gold: 500,
			Train: 80, Atmos: 70,
		},
		Env:    &command.Env{WorldID: 1, Year: 195, Month: 7, StartYear: 189, DevelCost: 12},
		City:   &domain.City{ID: 10, WorldID: 1, NationID: 1, SupplyState: 1, Adjacent: []int64{20}},
		Nation: &domain.Nation{ID: 1, WorldID: 1, Level: 2},
		DestCity: &domain.City{
			ID: 20, WorldID: 1, Name: "宛城", NationID: 2,
		},
		DestNation: &domain.Nation{ID: 2, WorldID: 1},
		Map: &command.MapContext{
			Adjacency:      map[domain.CityID][]domain.CityID{10: {20}, 20: {10}},
			AtWarNationIDs: map[domain.NationID]bool{2: true},
		},
	}
}

func TestAdvance_敌城触发战斗并置临战状态(t *testing.T) {
	cmd := NewAdvance(marchBase())

	if reason := command.CheckConstraints(cmd); reason != "" {
		t.Fatalf("constraints should pass: %s", reason)
	}

	res := cmd.Run(rng.NewSeeded("march"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}
	if !res.Effects.BattleTriggered {
		t.Fatal("march at an enemy city must trigger battle")
	}
	if res.Effects.TargetCityID != 20 {
		t.Fatalf("target city = %d, want 20", res.Effects.TargetCityID)
	}
	u := res.Effects.CityStateUpdate
	if u == nil || u.State != domain.CityStateInvaded || u.Term != 3 {
		t.Fatalf("city state update = %+v, want state 43 term 3", u)
	}
	// 军粮 = 3000/100 = 30
	if res.Effects.General.Rice != -30 {
		t.Fatalf("rice cost = %d, want -30", res.Effects.General.Rice)
	}
	if res.Effects.Dex == nil || res.Effects.Dex.Amount != 30 {
		t.Fatalf("dex gain = %+v, want 30", res.Effects.Dex)
	}
}

func TestAdvance_目标是本国城市时退化为移动(t *testing.T) {
	b := marchBase()
	b.DestCity.NationID = 1
	cmd := NewAdvance(b)

	res := cmd.Run(rng.NewSeeded("march"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}
	if res.Effects.BattleTriggered {
		t.Fatal("friendly destination must not trigger battle")
	}
	gd := res.Effects.General
	if gd.CityID == nil || *gd.CityID != 20 {
		t.Fatalf("should move to the destination, got %+v", gd.CityID)
	}
	if gd.Experience != 50 || gd.LeadershipExp != 1 {
		t.Fatalf("move fallback grants exp 50 / leadership exp 1, got %+v", gd)
	}
}

func TestAdvance_声明了移动作为替代命令(t *testing.T) {
	if alt := NewAdvance(marchBase()).Alternative(); alt != "move" {
		t.Fatalf("alternative = %q, want move", alt)
	}
}

func TestMove_相邻城市移动折损士气(t *testing.T) {
	b := marchBase()
	b.DestCity.NationID = 1
	cmd := NewMove(b)

	if reason := command.CheckConstraints(cmd); reason != "" {
		t.Fatalf("constraints should pass: %s", reason)
	}

	res := cmd.Run(rng.NewSeeded("move"))
	gd := res.Effects.General
	if gd.CityID == nil || *gd.CityID != 20 {
		t.Fatalf("city assignment missing: %+v", gd)
	}
	if gd.Atmos != -5 {
		t.Fatalf("atmos delta = %d, want -5", gd.Atmos)
	}
	if gd.Gold != -12 {
		t.Fatalf("gold cost = %d, want develCost 12", gd.Gold)
	}
}

func TestMove_士气不会低于下限(t *testing.T) {
	b := marchBase()
	b.General.Atmos = 22
	cmd := NewMove(b)

	res := cmd.Run(rng.NewSeeded("move"))
	if got := b.General.Atmos + res.Effects.General.Atmos; got != 20 {
		t.Fatalf("atmos after move = %d, want floor 20", got)
	}
}

func TestMove_不相邻的目标被拦下(t *testing.T) {
	b := marchBase()
	b.Map.Adjacency = map[domain.CityID][]domain.CityID{10: {}, 20: {}}
	cmd := NewMove(b)

	if reason := command.CheckConstraints(cmd); reason == "" {
		t.Fatal("expected adjacency failure")
	}
}

func TestDonate_捐献受现有资源约束(t *testing.T) {
	b := marchBase()
	b.General.Gold = 250
	cmd := NewDonate(b)
	cmd.State().Arg = map[string]any{"isGold": true, "amount": int64(5000)}

	res := cmd.Run(rng.NewSeeded("donate"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}
	// 5000 夹到手头 250
	if res.Effects.General.Gold != -250 || res.Effects.Nation.Gold != 250 {
		t.Fatalf("donation = %d/%d, want -250/+250",
			res.Effects.General.Gold, res.Effects.Nation.Gold)
	}
	if res.Effects.General.Dedication != 100 || res.Effects.General.Experience != 70 {
		t.Fatalf("donate grants ded 100 exp 70, got %+v", res.Effects.General)
	}
}

func TestTrain_训练上限封顶(t *testing.T) {
	b := marchBase()
	b.General.Train = 78
	cmd := NewTrain(b)

	res := cmd.Run(rng.NewSeeded("train"))
	if got := res.Effects.General.Train; got > 2 {
		t.Fatalf("train delta = %d, cap is 80", got)
	}
	if res.Effects.General.Experience != 100 || res.Effects.General.Dedication != 70 {
		t.Fatalf("train grants exp 100 ded 70, got %+v", res.Effects.General)
	}
}

func TestMorale_金费按兵力折算(t *testing.T) {
	b := marchBase()
	cmd := NewMorale(b)

	if cost := cmd.Cost(); cost.Gold != 30 {
		t.Fatalf("morale gold cost = %d, want crew/100 = 30", cost.Gold)
	}

	res := cmd.Run(rng.NewSeeded("morale"))
	// 训练度被磨掉一成：80 → 72
	if res.Effects.General.Train != 72-80 {
		t.Fatalf("train side effect = %d, want -8", res.Effects.General.Train)
	}
}
