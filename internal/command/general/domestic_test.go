package general

import (
	"testing"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

func domesticBase() *command.Base {
	return &command.Base{
		General: &domain.General{
			ID: 1, WorldID: 1, NationID: 1, CityID: 10,
			Leadership: 70, Strength: 60, Intel: 90,
			Gold: 5000, Rice: 5000,
		},
		Env: &command.Env{WorldID: 1, Year: 200, Month: 5, StartYear: 189, DevelCost: 12},
		City: &domain.City{
			ID: 10, WorldID: 1, NationID: 1, Trust: 90, SupplyState: 1,
			Agri: 500, AgriMax: 1000, Comm: 980, CommMax: 1000,
		},
		Nation: &domain.Nation{ID: 1, WorldID: 1, Level: 3},
	}
}

func TestDevAgri_产出范围与账目(t *testing.T) {
	r := rng.NewSeeded("agri")
	for i := 0; i < 200; i++ {
		cmd := NewDevAgri(domesticBase())
		res := cmd.Run(r)
		if !res.Success {
			t.Fatalf("round %d: expected success", i)
		}

		gd := res.Effects.General
		if gd.Gold != -12 {
			t.Fatalf("round %d: gold = %d, want -12", i, gd.Gold)
		}
		if gd.IntelExp != 1 {
			t.Fatalf("round %d: agriculture feeds intel exp, got %d", i, gd.IntelExp)
		}
		if gd.Dedication < 1 {
			t.Fatalf("round %d: dedication = %d", i, gd.Dedication)
		}
		if gd.Experience != int(float64(gd.Dedication)*0.7) {
			t.Fatalf("round %d: exp %d should be 0.7 of score %d", i, gd.Experience, gd.Dedication)
		}

		delta := res.Effects.City.Agri
		if delta < 1 || delta > 500 {
			t.Fatalf("round %d: agri delta %d out of range", i, delta)
		}
		// 智 90、民心 90：score ≤ 90*0.9*1.2*1.5 = 145
		if delta > 146 {
			t.Fatalf("round %d: delta %d above theoretical ceiling", i, delta)
		}
	}
}

func TestDevComm_增量不超过剩余空间(t *testing.T) {
	r := rng.NewSeeded("comm")
	for i := 0; i < 100; i++ {
		cmd := NewDevComm(domesticBase())
		res := cmd.Run(r)
		if delta := res.Effects.City.Comm; delta > 20 {
			t.Fatalf("round %d: comm delta %d exceeds room of 20", i, delta)
		}
	}
}

func TestDomestic_前线城市产出减半(t *testing.T) {
	// 同一随机流跑两次，只有前线标记不同
	r1 := rng.NewSeeded("front")
	r2 := rng.NewSeeded("front")

	normal := NewDevAgri(domesticBase())
	resNormal := normal.Run(r1)

	b := domesticBase()
	b.City.FrontState = domain.FrontWar
	front := NewDevAgri(b)
	resFront := front.Run(r2)

	if resFront.Effects.City.Agri > resNormal.Effects.City.Agri {
		t.Fatalf("front-line delta %d should not exceed normal %d",
			resFront.Effects.City.Agri, resNormal.Effects.City.Agri)
	}
}

func TestDomestic_建国初期的前线都城减益打折(t *testing.T) {
	// relYear = 3：debuffScale 为 0，前线减益完全豁免
	r1 := rng.NewSeeded("capital")
	r2 := rng.NewSeeded("capital")

	b1 := domesticBase()
	b1.Env.Year = b1.Env.StartYear + 3
	b1.City.FrontState = domain.FrontBorder
	b1.Nation.Capital = b1.City.ID
	resCapital := NewDevAgri(b1).Run(r1)

	b2 := domesticBase()
	b2.Env.Year = b2.Env.StartYear + 3
	b2.City.FrontState = domain.FrontBorder
	resPlain := NewDevAgri(b2).Run(r2)

	if resCapital.Effects.City.Agri < resPlain.Effects.City.Agri {
		t.Fatalf("young capital %d should outproduce a plain front city %d",
			resCapital.Effects.City.Agri, resPlain.Effects.City.Agri)
	}
}

func TestDomestic_约束链金费不足时报原因(t *testing.T) {
	b := domesticBase()
	b.General.Gold = 0
	cmd := NewDevAgri(b)

	reason := command.CheckConstraints(cmd)
	if reason == "" {
		t.Fatal("expected gold constraint failure")
	}
}

func TestDevSecuDefWall_各自吃对应属性经验(t *testing.T) {
	r := rng.NewSeeded("stat")

	res := NewDevSecu(domesticBase()).Run(r)
	if res.Effects.General.LeadershipExp != 1 {
		t.Fatalf("secu feeds leadership, got %+v", res.Effects.General)
	}

	res = NewDevDef(domesticBase()).Run(r)
	if res.Effects.General.StrengthExp != 1 {
		t.Fatalf("def feeds strength, got %+v", res.Effects.General)
	}

	res = NewDevWall(domesticBase()).Run(r)
	if res.Effects.General.StrengthExp != 1 {
		t.Fatalf("wall feeds strength, got %+v", res.Effects.General)
	}
}
