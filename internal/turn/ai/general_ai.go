// Package ai NPC 决策。只做选择不做执行，选出的动作码
// 交回回合服务走统一的命令管线。
package ai

import (
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

// Store AI 决策所需的只读世界视图。
type Store interface {
	CityByID(worldID domain.WorldID, id domain.CityID) (*domain.City, error)
	CitiesByWorld(worldID domain.WorldID) ([]*domain.City, error)
	GeneralsByNation(worldID domain.WorldID, nationID domain.NationID) ([]*domain.General, error)
	NationByID(worldID domain.WorldID, id domain.NationID) (*domain.Nation, error)
	DiplomaciesByWorld(worldID domain.WorldID) ([]*domain.Diplomacy, error)
}

// 武将类型标记，按三维里占优的一项划定
const (
	typeWarrior    = 1 << iota // 武力见长
	typeStrategist             // 智力见长
	typeCommander              // 统率 70 以上
)

type GeneralAI struct {
	store Store
}

func NewGeneralAI(store Store) *GeneralAI {
	return &GeneralAI{store: store}
}

// DecideGeneral 战时优先备战出兵，平时按武将类型分工内政。
// 决不返回空动作码，兜不住时退为 rest。
func (a *GeneralAI) DecideGeneral(world *domain.World, g *domain.General, r *rng.Rand) (string, map[string]any) {
	if g.NationID == domain.NationNeutral {
		return domain.ActionRest, nil
	}

	city, err := a.store.CityByID(world.ID, g.CityID)
	if err != nil || city == nil {
		return domain.ActionRest, nil
	}

	// 伤兵先休养
	if g.Injury > 20 {
		return domain.ActionRest, nil
	}

	atWar := a.isAtWar(world.ID, g.NationID)
	if atWar {
		return a.decideWar(world, g, city, r)
	}
	return a.decidePeace(g, city, r)
}

func (a *GeneralAI) decideWar(world *domain.World, g *domain.General, city *domain.City, r *rng.Rand) (string, map[string]any) {
	ownCity := city.NationID == g.NationID

	if g.Crew < 100 && ownCity {
		if g.Gold > 500 {
			return "levy", recruitArg(g)
		}
		return "draft", recruitArg(g)
	}
	if g.Crew > 0 && g.Train < 80 {
		return "train", nil
	}
	if g.Crew > 0 && g.Atmos < 80 {
		return "boostMorale", nil
	}

	if city.IsFrontline() && g.Crew > 500 {
		if target := a.pickInvasionTarget(world.ID, g.NationID, city, r); target != 0 {
			return "advance", map[string]any{"destCityId": int64(target)}
		}
	}
	if !city.IsFrontline() {
		if front := a.pickFrontCity(world.ID, g.NationID, r); front != 0 {
			return "move", map[string]any{"destCityId": int64(front)}
		}
	}
	if g.Crew < 1000 && ownCity {
		return "levy", recruitArg(g)
	}
	return domain.ActionRest, nil
}

func (a *GeneralAI) decidePeace(g *domain.General, city *domain.City, r *rng.Rand) (string, map[string]any) {
	if city.NationID == g.NationID {
		switch {
		case city.Agri < city.AgriMax/2:
			return "devAgri", nil
		case city.Comm < city.CommMax/2:
			return "devComm", nil
		case city.Secu < city.SecuMax/2:
			return "devSecu", nil
		}
	}

	switch classify(g) {
	case typeWarrior:
		if g.Crew > 0 && g.Train < 100 {
			return "train", nil
		}
		if g.Crew < 1000 && city.NationID == g.NationID {
			return "draft", recruitArg(g)
		}
	case typeStrategist:
		if city.NationID == g.NationID {
			return rng.Choice(r, []string{"devAgri", "devSecu"}), nil
		}
	case typeCommander:
		if g.Crew > 0 && g.Atmos < 100 {
			return "boostMorale", nil
		}
		if g.Crew < 1000 && city.NationID == g.NationID {
			return "levy", recruitArg(g)
		}
	}

	if city.NationID == g.NationID {
		return rng.Choice(r, []string{"devAgri", "devComm", "devSecu"}), nil
	}
	return domain.ActionRest, nil
}

func (a *GeneralAI) isAtWar(worldID domain.WorldID, nationID domain.NationID) bool {
	dips, err := a.store.DiplomaciesByWorld(worldID)
	if err != nil {
		return false
	}
	for _, d := range dips {
		if d.NationID == nationID && d.IsWar() {
			return true
		}
	}
	return false
}

// pickInvasionTarget 从邻接城市里挑交战势力的城。
func (a *GeneralAI) pickInvasionTarget(worldID domain.WorldID, nationID domain.NationID, city *domain.City, r *rng.Rand) domain.CityID {
	dips, err := a.store.DiplomaciesByWorld(worldID)
	if err != nil {
		return 0
	}
	enemies := map[domain.NationID]bool{}
	for _, d := range dips {
		if d.NationID == nationID && d.IsWar() {
			enemies[d.TargetID] = true
		}
	}
	if len(enemies) == 0 {
		return 0
	}

	var targets []domain.CityID
	for _, adj := range city.AdjacentIDs() {
		c, err := a.store.CityByID(worldID, adj)
		if err != nil || c == nil {
			continue
		}
		if enemies[c.NationID] {
			targets = append(targets, c.ID)
		}
	}
	if len(targets) == 0 {
		return 0
	}
	return rng.Choice(r, targets)
}

// pickFrontCity 后方武将往前线城市靠。
func (a *GeneralAI) pickFrontCity(worldID domain.WorldID, nationID domain.NationID, r *rng.Rand) domain.CityID {
	cities, err := a.store.CitiesByWorld(worldID)
	if err != nil {
		return 0
	}
	var fronts []domain.CityID
	for _, c := range cities {
		if c.NationID == nationID && c.IsFrontline() {
			fronts = append(fronts, c.ID)
		}
	}
	if len(fronts) == 0 {
		return 0
	}
	return rng.Choice(r, fronts)
}

func classify(g *domain.General) int {
	switch {
	case g.Strength >= g.Leadership && g.Strength >= g.Intel:
		return typeWarrior
	case g.Intel >= g.Leadership && g.Intel >= g.Strength:
		return typeStrategist
	case g.Leadership >= 70:
		return typeCommander
	}
	return 0
}

func recruitArg(g *domain.General) map[string]any {
	amount := g.Leadership*100 - g.Crew
	if amount < 100 {
		amount = 100
	}
	return map[string]any{"amount": int64(amount), "crewType": int64(domain.CrewFootman)}
}
