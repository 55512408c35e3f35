package general

import (
	"testing"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

func recruitBase(arg map[string]any) *command.Base {
	return &command.Base{
		General: &domain.General{
			ID: 1, WorldID: 1, NationID: 1, CityID: 10,
			Leadership: 100, Gold: 100000, Rice: 100000,
			Crew: 1000, CrewType: domain.CrewFootman, Train: 80, Atmos: 60,
		},
		Env: &command.Env{WorldID: 1, Year: 190, Month: 3, StartYear: 189},
		City: &domain.City{
			ID: 10, WorldID: 1, NationID: 1, Pop: 50000, PopMax: 100000, Trust: 80,
			SupplyState: 1,
		},
		Nation: &domain.Nation{ID: 1, WorldID: 1, Level: 1},
		Arg:    arg,
	}
}

func TestDraft_同兵种续募按人数加权摊薄(t *testing.T) {
	cmd := NewDraft(recruitBase(map[string]any{
		"crewType": int64(domain.CrewFootman),
		"amount":   int64(500),
	}))

	if reason := command.CheckConstraints(cmd); reason != "" {
		t.Fatalf("constraints should pass: %s", reason)
	}

	res := cmd.Run(rng.NewSeeded("draft"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}

	gd := res.Effects.General
	if gd.Crew != 500 {
		t.Fatalf("crew delta = %d, want 500", gd.Crew)
	}
	// (1000*80 + 500*40) / 1500 = 66（整数截断）
	if gd.Train != 66-80 {
		t.Fatalf("train delta = %d, want %d", gd.Train, 66-80)
	}
	// (1000*60 + 500*40) / 1500 = 53
	if gd.Atmos != 53-60 {
		t.Fatalf("atmos delta = %d, want %d", gd.Atmos, 53-60)
	}
	if gd.CrewType == nil || *gd.CrewType != domain.CrewFootman {
		t.Fatalf("crew type must be set, got %v", gd.CrewType)
	}
	if gd.Experience != 5 || gd.Dedication != 5 || gd.LeadershipExp != 1 {
		t.Fatalf("exp/ded/statExp = %d/%d/%d", gd.Experience, gd.Dedication, gd.LeadershipExp)
	}

	// 金费 = 10 * 1.0 * 500/100 * 1 = 50，军粮 = 500/100 = 5
	if gd.Gold != -50 || gd.Rice != -5 {
		t.Fatalf("cost = %d gold %d rice, want -50/-5", gd.Gold, gd.Rice)
	}

	cd := res.Effects.City
	if cd.Pop != -500 {
		t.Fatalf("pop delta = %d, want -500", cd.Pop)
	}
	// 500/50000 / 1 * 100 = 1
	if cd.Trust != -1 {
		t.Fatalf("trust delta = %v, want -1", cd.Trust)
	}
	if res.Effects.Dex == nil || res.Effects.Dex.Amount != 5 {
		t.Fatalf("dex gain = %+v, want 5", res.Effects.Dex)
	}
}

func TestDraft_换兵种直接重置训练和士气(t *testing.T) {
	cmd := NewDraft(recruitBase(map[string]any{
		"crewType": int64(domain.CrewArcher),
		"amount":   int64(2000),
	}))

	res := cmd.Run(rng.NewSeeded("draft"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}

	gd := res.Effects.General
	// 换兵种：统率上限不再扣旧兵力，全额 2000
	if gd.Crew != 2000-1000 {
		t.Fatalf("crew delta = %d, want %d", gd.Crew, 2000-1000)
	}
	if gd.Train != 40-80 || gd.Atmos != 40-60 {
		t.Fatalf("train/atmos should reset to defaults, got %d/%d", gd.Train, gd.Atmos)
	}
}

func TestLevy_代价翻倍但训练士气起点更高(t *testing.T) {
	b := recruitBase(map[string]any{
		"crewType": int64(domain.CrewArcher),
		"amount":   int64(1000),
	})
	cmd := NewLevy(b)

	res := cmd.Run(rng.NewSeeded("levy"))
	if !res.Success {
		t.Fatalf("expected success, logs=%v", res.Logs)
	}

	gd := res.Effects.General
	if gd.Train != 70-80 || gd.Atmos != 70-60 {
		t.Fatalf("levy defaults 70/70, got deltas %d/%d", gd.Train, gd.Atmos)
	}
	// 金费 = 12 * 1.0 * 1000/100 * 2 = 240
	if gd.Gold != -240 {
		t.Fatalf("levy gold cost = %d, want -240", gd.Gold)
	}
	// 民心折损减半：1000/50000 / 2 * 100 = 1
	if res.Effects.City.Trust != -1 {
		t.Fatalf("trust delta = %v, want -1", res.Effects.City.Trust)
	}
}

func TestDraft_请求量低于下限时按一百人算(t *testing.T) {
	cmd := NewDraft(recruitBase(map[string]any{
		"crewType": int64(domain.CrewCavalry),
		"amount":   int64(1),
	}))

	res := cmd.Run(rng.NewSeeded("draft"))
	gd := res.Effects.General
	if gd.Crew != 100-1000 {
		t.Fatalf("min recruit is 100, crew delta = %d", gd.Crew)
	}
}

func TestDraft_民心不足被约束拦下(t *testing.T) {
	b := recruitBase(map[string]any{
		"crewType": int64(domain.CrewFootman),
		"amount":   int64(500),
	})
	b.City.Trust = 10
	cmd := NewDraft(b)

	if reason := command.CheckConstraints(cmd); reason == "" {
		t.Fatal("expected a trust constraint failure")
	}
}
