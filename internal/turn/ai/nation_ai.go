package ai

import (
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const nationActionRest = "nationRest"

type NationAI struct {
	store Store
}

func NewNationAI(store Store) *NationAI {
	return &NationAI{store: store}
}

// DecideNation NPC 君主的势力槽决策：缺钱先休养生息，
// 交战中打战略牌，太平年景犒赏功臣。
func (a *NationAI) DecideNation(world *domain.World, nation *domain.Nation, ruler *domain.General, r *rng.Rand) (string, map[string]any) {
	if nation.Gold < 1000 {
		return nationActionRest, nil
	}

	if enemy := a.warTarget(world.ID, nation.ID); enemy != 0 {
		if nation.StrategicCmdLimit > 0 {
			return nationActionRest, nil
		}
		if cityID := a.pickEnemyCity(world.ID, enemy, r); cityID != 0 {
			return "raid", map[string]any{
				"destNationId": int64(enemy),
				"destCityId":   int64(cityID),
			}
		}
		return nationActionRest, nil
	}

	if nation.Gold > 3000 {
		if target := a.pickRewardTarget(world.ID, nation.ID, ruler.ID); target != 0 {
			return "reward", map[string]any{
				"destGeneralId": int64(target),
				"amount":        int64(500),
				"isGold":        true,
			}
		}
	}

	return nationActionRest, nil
}

func (a *NationAI) warTarget(worldID domain.WorldID, nationID domain.NationID) domain.NationID {
	dips, err := a.store.DiplomaciesByWorld(worldID)
	if err != nil {
		return 0
	}
	for _, d := range dips {
		if d.NationID == nationID && d.IsWar() {
			return d.TargetID
		}
	}
	return 0
}

func (a *NationAI) pickEnemyCity(worldID domain.WorldID, enemy domain.NationID, r *rng.Rand) domain.CityID {
	cities, err := a.store.CitiesByWorld(worldID)
	if err != nil {
		return 0
	}
	var candidates []domain.CityID
	for _, c := range cities {
		if c.NationID == enemy {
			candidates = append(candidates, c.ID)
		}
	}
	if len(candidates) == 0 {
		return 0
	}
	return rng.Choice(r, candidates)
}

// pickRewardTarget 贡献最低的在职武将，不赏自己。
func (a *NationAI) pickRewardTarget(worldID domain.WorldID, nationID domain.NationID, rulerID domain.GeneralID) domain.GeneralID {
	members, err := a.store.GeneralsByNation(worldID, nationID)
	if err != nil {
		return 0
	}
	var target *domain.General
	for _, g := range members {
		if g.ID == rulerID || g.NpcState == domain.NpcRetired {
			continue
		}
		if g.Dedication >= 80 {
			continue
		}
		if target == nil || g.Dedication < target.Dedication {
			target = g
		}
	}
	if target == nil {
		return 0
	}
	return target.ID
}
