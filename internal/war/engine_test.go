package war

import (
	"math"
	"testing"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

func testGeneral(name string, nationID domain.NationID, crew int, rice int64) *domain.General {
	return &domain.General{
		Name:       name,
		NationID:   nationID,
		Leadership: 60,
		Strength:   80,
		Intel:      40,
		Crew:       crew,
		CrewType:   domain.CrewFootman,
		Rice:       rice,
		Train:      100,
		Atmos:      100,
	}
}

func testCity(name string, nationID domain.NationID, def, wall int) *domain.City {
	return &domain.City{
		Name:     name,
		NationID: nationID,
		Def:      def,
		DefMax:   1000,
		Wall:     wall,
		WallMax:  1000,
	}
}

func TestGeneralUnit_攻防值按属性与技术力换算(t *testing.T) {
	g := testGeneral("甲", 1, 1000, 1000)
	u := NewGeneralUnit(g, 1000)

	wantAttack := (80*0.7 + 60*0.3) * 2.0
	if math.Abs(u.BaseAttack()-wantAttack) > 1e-9 {
		t.Fatalf("BaseAttack = %v, want %v", u.BaseAttack(), wantAttack)
	}
	wantDefence := (60*0.5 + 80*0.3 + 40*0.2) * 2.0
	if math.Abs(u.BaseDefence()-wantDefence) > 1e-9 {
		t.Fatalf("BaseDefence = %v, want %v", u.BaseDefence(), wantDefence)
	}
}

func TestGeneralUnit_军粮见底不能再战(t *testing.T) {
	g := testGeneral("乙", 1, 1000, 10)
	u := NewGeneralUnit(g, 0)

	// rice 必须严格大于 hp/100
	if u.ContinueWar() {
		t.Fatal("rice 10, hp 1000: 不应能继续作战")
	}
	g2 := testGeneral("丙", 1, 1000, 11)
	if !NewGeneralUnit(g2, 0).ContinueWar() {
		t.Fatal("rice 11, hp 1000: 应能继续作战")
	}
}

func TestCityUnit_耐久与攻防换算(t *testing.T) {
	c := testCity("宛", 2, 100, 50)
	u := NewCityUnit(c)

	if u.HP() != 1000 {
		t.Fatalf("hp = %d, want 1000", u.HP())
	}
	wantAttack := float64(100+50*9)/500.0 + 200.0
	if math.Abs(u.BaseAttack()-wantAttack) > 1e-9 {
		t.Fatalf("BaseAttack = %v, want %v", u.BaseAttack(), wantAttack)
	}
	if math.Abs(u.BaseDefence()-wantAttack*1.5) > 1e-9 {
		t.Fatalf("BaseDefence = %v, want %v", u.BaseDefence(), wantAttack*1.5)
	}

	u.TakeDamage(500)
	u.ApplyResults()
	if c.Def != 50 {
		t.Fatalf("写回守备 = %d, want 50", c.Def)
	}
}

func TestEngine_无守军时攻城占领(t *testing.T) {
	attacker := testGeneral("张将", 1, 10000, 10000)
	city := testCity("小沛", 2, 10, 0)
	r := rng.New("seed", "ConquerCity", 1)

	res := NewEngine().Resolve(NewGeneralUnit(attacker, 0), nil, city, r)

	if !res.CityOccupied {
		t.Fatal("空城应被占领")
	}
	if !res.AttackerWon {
		t.Fatal("占领方应判胜")
	}
	if city.Def != 0 {
		t.Fatalf("城破后守备应归零, got %d", city.Def)
	}
	if attacker.Crew >= 10000 && attacker.Rice >= 10000 {
		t.Fatal("攻城应有兵力或军粮损耗")
	}
}

func TestEngine_攻方断粮判负不占领(t *testing.T) {
	attacker := testGeneral("李将", 1, 100, 1)
	defender := testGeneral("守将", 2, 5000, 5000)
	city := testCity("下邳", 2, 500, 500)
	r := rng.New("seed", "ConquerCity", 2)

	res := NewEngine().Resolve(
		NewGeneralUnit(attacker, 0),
		[]*GeneralUnit{NewGeneralUnit(defender, 0)},
		city, r)

	if res.AttackerWon {
		t.Fatal("断粮的攻方不应判胜")
	}
	if res.CityOccupied {
		t.Fatal("不应占领")
	}
}

func TestEngine_攻城相位数封顶后撤军(t *testing.T) {
	attacker := testGeneral("王将", 1, 100000, 100000)
	city := testCity("洛阳", 2, 10000, 1000)
	r := rng.New("seed", "ConquerCity", 3)

	engine := &Engine{MaxSiegeRounds: 1}
	res := engine.Resolve(NewGeneralUnit(attacker, 0), nil, city, r)

	if res.CityOccupied {
		t.Fatal("一个相位打不穿十万耐久")
	}
	if res.AttackerWon {
		t.Fatal("攻城僵持应判负")
	}
}

func TestEngine_同一随机流结果可复现(t *testing.T) {
	resolve := func() *Result {
		attacker := testGeneral("赵将", 1, 5000, 5000)
		defender := testGeneral("守将", 2, 4000, 4000)
		city := testCity("寿春", 2, 300, 200)
		r := rng.New("seed", "ConquerCity", 184, 3, 1, 7, 20)
		return NewEngine().Resolve(
			NewGeneralUnit(attacker, 500),
			[]*GeneralUnit{NewGeneralUnit(defender, 300)},
			city, r)
	}

	a := resolve()
	b := resolve()
	if a.AttackerWon != b.AttackerWon || a.CityOccupied != b.CityOccupied {
		t.Fatal("胜负结果不可复现")
	}
	if a.AttackerDamageDealt != b.AttackerDamageDealt || a.DefenderDamageDealt != b.DefenderDamageDealt {
		t.Fatalf("伤害不可复现: %d/%d vs %d/%d",
			a.AttackerDamageDealt, a.DefenderDamageDealt,
			b.AttackerDamageDealt, b.DefenderDamageDealt)
	}
	if len(a.Logs) != len(b.Logs) {
		t.Fatalf("日志条数不可复现: %d vs %d", len(a.Logs), len(b.Logs))
	}
}

func TestEngine_战斗后士气下降(t *testing.T) {
	attacker := testGeneral("孙将", 1, 5000, 5000)
	defender := testGeneral("守将", 2, 4000, 4000)
	city := testCity("江陵", 2, 300, 200)
	r := rng.New("seed", "ConquerCity", 4)

	NewEngine().Resolve(
		NewGeneralUnit(attacker, 0),
		[]*GeneralUnit{NewGeneralUnit(defender, 0)},
		city, r)

	if attacker.Atmos >= 100 {
		t.Fatalf("攻方士气应下降, got %d", attacker.Atmos)
	}
	if defender.Crew > 0 && defender.Atmos >= 100 {
		t.Fatalf("守方士气应下降, got %d", defender.Atmos)
	}
}
