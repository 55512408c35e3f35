package nation

import (
	"testing"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

func chiefBase() *command.Base {
	return &command.Base{
		General: &domain.General{
			ID: 1, WorldID: 1, NationID: 1, CityID: 10, Name: "曹操",
			OfficerLevel: domain.OfficerChief, Gold: 1000, Rice: 1000,
		},
		Env:    &command.Env{WorldID: 1, Year: 200, Month: 1, StartYear: 189, GameStor: map[string]any{}},
		City:   &domain.City{ID: 10, WorldID: 1, NationID: 1, SupplyState: 1},
		Nation: &domain.Nation{ID: 1, WorldID: 1, Name: "魏", Level: 3, Gold: 5000, Rice: 5000},
	}
}

func TestReward_国库要留基准储备(t *testing.T) {
	b := chiefBase()
	b.DestGeneral = &domain.General{ID: 2, WorldID: 1, NationID: 1, Name: "许褚", Gold: 100}
	b.Arg = map[string]any{"isGold": true, "amount": int64(100000)}
	cmd := NewReward(b)

	res := cmd.Run(rng.NewSeeded("reward"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}
	// 国库 5000，基准储备 1000，最多发 4000
	if b.Nation.Gold != 1000 {
		t.Fatalf("nation gold = %d, want reserve 1000", b.Nation.Gold)
	}
	if b.DestGeneral.Gold != 4100 {
		t.Fatalf("dest general gold = %d, want 4100", b.DestGeneral.Gold)
	}
}

func TestReward_不能发给自己(t *testing.T) {
	b := chiefBase()
	b.DestGeneral = b.General
	b.Arg = map[string]any{"destGeneralId": int64(1), "amount": int64(100)}
	cmd := NewReward(b)

	if reason := command.CheckConstraints(cmd); reason == "" {
		t.Fatal("expected self-reward rejection")
	}
}

func TestReward_金额按百取整(t *testing.T) {
	b := chiefBase()
	b.DestGeneral = &domain.General{ID: 2, WorldID: 1, NationID: 1, Name: "许褚"}
	b.Arg = map[string]any{"isGold": true, "amount": int64(250)}
	cmd := NewReward(b)

	res := cmd.Run(rng.NewSeeded("reward"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}
	// 250 → 300（就近取整到百）
	if b.DestGeneral.Gold != 300 {
		t.Fatalf("dest general gold = %d, want 300", b.DestGeneral.Gold)
	}
}

func TestConfiscate_没收封顶于对方持有量并累计背叛(t *testing.T) {
	b := chiefBase()
	b.DestGeneral = &domain.General{ID: 2, WorldID: 1, NationID: 1, Name: "张绣", Gold: 150, Betray: 4}
	b.Arg = map[string]any{"isGold": true, "amount": int64(1000)}
	cmd := NewConfiscate(b)

	res := cmd.Run(rng.NewSeeded("confiscate"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}
	if b.DestGeneral.Gold != 0 {
		t.Fatalf("dest general gold = %d, want 0", b.DestGeneral.Gold)
	}
	if b.Nation.Gold != 5150 {
		t.Fatalf("nation gold = %d, want 5150", b.Nation.Gold)
	}
	if b.DestGeneral.Betray != 5 {
		t.Fatalf("betray = %d, want 5", b.DestGeneral.Betray)
	}

	// 再没收一次，背叛计数不破 5
	res = cmd.Run(rng.NewSeeded("confiscate"))
	if !res.Success || b.DestGeneral.Betray != 5 {
		t.Fatalf("betray must cap at 5, got %d", b.DestGeneral.Betray)
	}
}

func TestAid_输送受国库余量约束(t *testing.T) {
	b := chiefBase()
	b.DestNation = &domain.Nation{ID: 2, WorldID: 1, Name: "蜀", Gold: 100, Rice: 100}
	b.Arg = map[string]any{"goldAmount": int64(99999), "riceAmount": int64(2000)}
	cmd := NewAid(b)

	res := cmd.Run(rng.NewSeeded("aid"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}
	if b.Nation.Gold != 0 || b.Nation.Rice != 3000 {
		t.Fatalf("nation after aid = %d/%d, want 0/3000", b.Nation.Gold, b.Nation.Rice)
	}
	if b.DestNation.Gold != 5100 || b.DestNation.Rice != 2100 {
		t.Fatalf("dest nation after aid = %d/%d, want 5100/2100", b.DestNation.Gold, b.DestNation.Rice)
	}
}

func TestAid_旧参数形式也能用(t *testing.T) {
	b := chiefBase()
	b.DestNation = &domain.Nation{ID: 2, WorldID: 1, Name: "蜀"}
	b.Arg = map[string]any{"isGold": false, "amount": int64(800)}
	cmd := NewAid(b)

	res := cmd.Run(rng.NewSeeded("aid"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}
	if b.DestNation.Rice != 800 || b.DestNation.Gold != 0 {
		t.Fatalf("legacy arg transfer = %d gold %d rice, want 0/800",
			b.DestNation.Gold, b.DestNation.Rice)
	}
}

func TestAid_一年冷却(t *testing.T) {
	if got := NewAid(chiefBase()).PostReqTurn(); got != 12 {
		t.Fatalf("aid post-req = %d, want 12", got)
	}
}

func TestRaid_焚毁敌城农商并触发战略封锁(t *testing.T) {
	b := chiefBase()
	b.DestNation = &domain.Nation{ID: 2, WorldID: 1, Name: "蜀"}
	b.DestCity = &domain.City{ID: 20, WorldID: 1, Name: "成都", NationID: 2, Agri: 1000, Comm: 1000}
	b.Map = &command.MapContext{AtWarNationIDs: map[domain.NationID]bool{2: true}}
	cmd := NewRaid(b)

	if reason := command.CheckConstraints(cmd); reason != "" {
		t.Fatalf("constraints should pass: %s", reason)
	}

	res := cmd.Run(rng.NewSeeded("raid"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}
	// 损失两到四成
	if b.DestCity.Agri < 600 || b.DestCity.Agri > 800 {
		t.Fatalf("agri after raid = %d, want within [600,800]", b.DestCity.Agri)
	}
	if b.DestCity.Comm < 600 || b.DestCity.Comm > 800 {
		t.Fatalf("comm after raid = %d, want within [600,800]", b.DestCity.Comm)
	}
	if b.Nation.StrategicCmdLimit != 9 {
		t.Fatalf("strategic limit = %d, want 9", b.Nation.StrategicCmdLimit)
	}
}

func TestRaid_战略封锁期内拒绝(t *testing.T) {
	b := chiefBase()
	b.Nation.StrategicCmdLimit = 3
	b.DestNation = &domain.Nation{ID: 2, WorldID: 1}
	b.DestCity = &domain.City{ID: 20, WorldID: 1, NationID: 2}
	b.Map = &command.MapContext{AtWarNationIDs: map[domain.NationID]bool{2: true}}
	cmd := NewRaid(b)

	if reason := command.CheckConstraints(cmd); reason == "" {
		t.Fatal("expected strategic cooldown rejection")
	}
}

func TestRaid_未交战的势力不可袭扰(t *testing.T) {
	b := chiefBase()
	b.DestNation = &domain.Nation{ID: 2, WorldID: 1}
	b.DestCity = &domain.City{ID: 20, WorldID: 1, NationID: 2}
	b.Map = &command.MapContext{AtWarNationIDs: map[domain.NationID]bool{}}
	cmd := NewRaid(b)

	if reason := command.CheckConstraints(cmd); reason == "" {
		t.Fatal("expected at-war constraint rejection")
	}
}
