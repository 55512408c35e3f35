package war

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/errs"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/logs"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

// Store 战斗结算所需的实体读写。查询未命中返回 (nil, nil)。
type Store interface {
	NationByID(worldID domain.WorldID, id domain.NationID) (*domain.Nation, error)
	GeneralsByCity(worldID domain.WorldID, cityID domain.CityID) ([]*domain.General, error)
	GeneralsByNation(worldID domain.WorldID, nationID domain.NationID) ([]*domain.General, error)
	CitiesByNation(worldID domain.WorldID, nationID domain.NationID) ([]*domain.City, error)
	SaveGeneral(g *domain.General) error
	SaveCity(c *domain.City) error
	SaveNation(n *domain.Nation) error
}

// BattleReport 落到 MongoDB 的战报文档。
type BattleReport struct {
	WorldID        int64     `bson:"worldId"`
	Year           int       `bson:"year"`
	Month          int       `bson:"month"`
	AttackerID     int64     `bson:"attackerId"`
	AttackerName   string    `bson:"attackerName"`
	AttackerNation int64     `bson:"attackerNation"`
	TargetCityID   int64     `bson:"targetCityId"`
	TargetCityName string    `bson:"targetCityName"`
	AttackerWon    bool      `bson:"attackerWon"`
	CityOccupied   bool      `bson:"cityOccupied"`
	NationFell     bool      `bson:"nationFell"`
	AttackerDamage int       `bson:"attackerDamage"`
	DefenderDamage int       `bson:"defenderDamage"`
	Logs           []string  `bson:"logs"`
	CreatedAt      time.Time `bson:"createdAt"`
}

// ReportStore 战报持久化。写失败不阻断结算，只记日志。
type ReportStore interface {
	SaveBattleReport(ctx context.Context, report *BattleReport) error
}

// Service 一场出兵从加载守军到落库的完整流程。
type Service struct {
	store   Store
	reports ReportStore
	engine  *Engine
}

func NewService(store Store, reports ReportStore) *Service {
	return &Service{store: store, reports: reports, engine: NewEngine()}
}

// ExecuteBattle 攻方武将进攻目标城市。
// 随机流按世界隐藏种子加战斗坐标派生，同一回合的同一场仗必然复现。
func (s *Service) ExecuteBattle(
	ctx context.Context,
	attacker *domain.General,
	targetCity *domain.City,
	world *domain.World,
) (*Result, error) {
	const op = "war.ExecuteBattle"

	r := rng.New(world.HiddenSeed, "ConquerCity",
		world.Year, world.Month,
		int64(attacker.NationID), int64(attacker.ID), int64(targetCity.ID))

	attackerNation, err := s.store.NationByID(world.ID, attacker.NationID)
	if err != nil {
		return nil, errs.Wrap(op, errs.KindInfra, err, map[string]any{"nationId": attacker.NationID})
	}
	attackerTech := 0.0
	if attackerNation != nil {
		attackerTech = attackerNation.Tech
	}
	attackerUnit := NewGeneralUnit(attacker, attackerTech)

	defenders, err := s.loadDefenders(world.ID, targetCity)
	if err != nil {
		return nil, errs.Wrap(op, errs.KindInfra, err, map[string]any{"cityId": targetCity.ID})
	}

	result := s.engine.Resolve(attackerUnit, defenders, targetCity, r)

	nationFell := false
	if result.CityOccupied {
		nationFell, err = s.occupyCity(world, targetCity, attacker, attackerNation, r)
		if err != nil {
			return nil, err
		}
	}

	// 战死人口入账
	targetCity.Dead += int64((result.AttackerDamageDealt + result.DefenderDamageDealt) / 100)

	if err := s.store.SaveCity(targetCity); err != nil {
		return nil, errs.Wrap(op, errs.KindInfra, err, map[string]any{"cityId": targetCity.ID})
	}
	if err := s.store.SaveGeneral(attacker); err != nil {
		return nil, errs.Wrap(op, errs.KindInfra, err, map[string]any{"generalId": attacker.ID})
	}
	for _, d := range defenders {
		if err := s.store.SaveGeneral(d.General); err != nil {
			return nil, errs.Wrap(op, errs.KindInfra, err, map[string]any{"generalId": d.General.ID})
		}
	}

	s.writeReport(ctx, world, attacker, targetCity, result, nationFell)

	logs.Info("battle resolved",
		zap.Int64("worldId", int64(world.ID)),
		zap.Int64("attackerId", int64(attacker.ID)),
		zap.Int64("cityId", int64(targetCity.ID)),
		zap.Bool("occupied", result.CityOccupied),
		zap.Bool("nationFell", nationFell))

	return result, nil
}

// loadDefenders 城里同势力且还有兵的武将全部应战。
func (s *Service) loadDefenders(worldID domain.WorldID, city *domain.City) ([]*GeneralUnit, error) {
	generals, err := s.store.GeneralsByCity(worldID, city.ID)
	if err != nil {
		return nil, err
	}

	defNation, err := s.store.NationByID(worldID, city.NationID)
	if err != nil {
		return nil, err
	}
	defTech := 0.0
	if defNation != nil {
		defTech = defNation.Tech
	}

	units := make([]*GeneralUnit, 0, len(generals))
	for _, g := range generals {
		if g.NationID != city.NationID || g.Crew <= 0 {
			continue
		}
		units = append(units, NewGeneralUnit(g, defTech))
	}
	return units, nil
}

// occupyCity 占领结算。
// 1. 城池易主：民心归零、守备三成残留、内政七成残留
// 2. 旧势力丢首都：还有城则迁都（国库减半、全员士气八成），没城则灭国
func (s *Service) occupyCity(
	world *domain.World,
	city *domain.City,
	attacker *domain.General,
	attackerNation *domain.Nation,
	r *rng.Rand,
) (bool, error) {
	const op = "war.occupyCity"

	oldNationID := city.NationID

	city.NationID = attacker.NationID
	city.Trust = 0
	city.Def = int(float64(city.Def) * 0.3)
	city.Agri = int(math.Round(float64(city.Agri) * 0.7))
	city.Comm = int(math.Round(float64(city.Comm) * 0.7))
	city.Secu = int(math.Round(float64(city.Secu) * 0.7))
	city.SupplyState = 1
	city.FrontState = domain.FrontNone
	city.State = domain.CityStateNormal
	city.StateTerm = 0

	attacker.CityID = city.ID

	if oldNationID == 0 {
		return false, nil
	}
	oldNation, err := s.store.NationByID(world.ID, oldNationID)
	if err != nil {
		return false, errs.Wrap(op, errs.KindInfra, err, map[string]any{"nationId": oldNationID})
	}
	if oldNation == nil {
		return false, nil
	}

	remaining, err := s.store.CitiesByNation(world.ID, oldNationID)
	if err != nil {
		return false, errs.Wrap(op, errs.KindInfra, err, map[string]any{"nationId": oldNationID})
	}
	// 刚易主的城可能还没从旧势力名下的查询结果里消失
	alive := remaining[:0]
	for _, c := range remaining {
		if c.ID != city.ID {
			alive = append(alive, c)
		}
	}

	if len(alive) == 0 {
		if err := s.collapseNation(world, oldNation, attackerNation, r); err != nil {
			return false, err
		}
		return true, nil
	}

	if oldNation.Capital == city.ID {
		if err := s.relocateCapital(world, oldNation, alive); err != nil {
			return false, err
		}
	}
	return false, nil
}

// relocateCapital 迁都到人口最多的残余城市。国库对半，举国士气八折。
func (s *Service) relocateCapital(world *domain.World, nation *domain.Nation, cities []*domain.City) error {
	const op = "war.relocateCapital"

	next := cities[0]
	for _, c := range cities[1:] {
		if c.Pop > next.Pop {
			next = c
		}
	}

	nation.Capital = next.ID
	nation.Gold = int64(math.Round(float64(nation.Gold) * 0.5))
	nation.Rice = int64(math.Round(float64(nation.Rice) * 0.5))

	next.SupplyState = 1
	if err := s.store.SaveCity(next); err != nil {
		return errs.Wrap(op, errs.KindInfra, err, map[string]any{"cityId": next.ID})
	}

	members, err := s.store.GeneralsByNation(world.ID, nation.ID)
	if err != nil {
		return errs.Wrap(op, errs.KindInfra, err, map[string]any{"nationId": nation.ID})
	}
	for _, g := range members {
		g.Atmos = int(math.Round(float64(g.Atmos) * 0.8))
		if g.OfficerLevel >= domain.OfficerMinCmd {
			g.CityID = next.ID
		}
		if err := s.store.SaveGeneral(g); err != nil {
			return errs.Wrap(op, errs.KindInfra, err, map[string]any{"generalId": g.ID})
		}
	}

	if err := s.store.SaveNation(nation); err != nil {
		return errs.Wrap(op, errs.KindInfra, err, map[string]any{"nationId": nation.ID})
	}

	logs.Info("capital relocated",
		zap.Int64("nationId", int64(nation.ID)),
		zap.Int64("newCapital", int64(next.ID)))
	return nil
}

// collapseNation 灭国。武将四散（随机丢两到五成钱粮、功绩九折、贡献五折、脱离势力），
// 国库超出底额的部分连同武将的损失一半归胜方。
func (s *Service) collapseNation(
	world *domain.World,
	fallen *domain.Nation,
	attackerNation *domain.Nation,
	r *rng.Rand,
) error {
	const op = "war.collapseNation"

	members, err := s.store.GeneralsByNation(world.ID, fallen.ID)
	if err != nil {
		return errs.Wrap(op, errs.KindInfra, err, map[string]any{"nationId": fallen.ID})
	}

	var totalGoldLoss, totalRiceLoss int64
	for _, g := range members {
		loseGold := int64(math.Round(float64(g.Gold) * (0.2 + r.NextFloat()*0.3)))
		loseRice := int64(math.Round(float64(g.Rice) * (0.2 + r.NextFloat()*0.3)))
		g.Gold -= loseGold
		if g.Gold < 0 {
			g.Gold = 0
		}
		g.Rice -= loseRice
		if g.Rice < 0 {
			g.Rice = 0
		}
		g.Experience = int(math.Round(float64(g.Experience) * 0.9))
		g.Dedication = int(math.Round(float64(g.Dedication) * 0.5))
		g.Detach()

		totalGoldLoss += loseGold
		totalRiceLoss += loseRice
		if err := s.store.SaveGeneral(g); err != nil {
			return errs.Wrap(op, errs.KindInfra, err, map[string]any{"generalId": g.ID})
		}
	}

	baseGold, baseRice := baseReserve(world)
	rewardGold := maxInt64(fallen.Gold-baseGold, 0)/2 + totalGoldLoss/2
	rewardRice := maxInt64(fallen.Rice-baseRice, 0)/2 + totalRiceLoss/2

	fallen.Level = 0
	fallen.Gold = 0
	fallen.Rice = 0
	if err := s.store.SaveNation(fallen); err != nil {
		return errs.Wrap(op, errs.KindInfra, err, map[string]any{"nationId": fallen.ID})
	}

	if attackerNation != nil {
		attackerNation.Gold += rewardGold
		attackerNation.Rice += rewardRice
		if err := s.store.SaveNation(attackerNation); err != nil {
			return errs.Wrap(op, errs.KindInfra, err, map[string]any{"nationId": attackerNation.ID})
		}
	}

	logs.Info("nation collapsed",
		zap.Int64("nationId", int64(fallen.ID)),
		zap.String("nation", fallen.Name),
		zap.Int64("rewardGold", rewardGold),
		zap.Int64("rewardRice", rewardRice))
	return nil
}

func (s *Service) writeReport(
	ctx context.Context,
	world *domain.World,
	attacker *domain.General,
	city *domain.City,
	result *Result,
	nationFell bool,
) {
	if s.reports == nil {
		return
	}
	report := &BattleReport{
		WorldID:        int64(world.ID),
		Year:           world.Year,
		Month:          world.Month,
		AttackerID:     int64(attacker.ID),
		AttackerName:   attacker.Name,
		AttackerNation: int64(attacker.NationID),
		TargetCityID:   int64(city.ID),
		TargetCityName: city.Name,
		AttackerWon:    result.AttackerWon,
		CityOccupied:   result.CityOccupied,
		NationFell:     nationFell,
		AttackerDamage: result.AttackerDamageDealt,
		DefenderDamage: result.DefenderDamageDealt,
		Logs:           result.Logs,
		CreatedAt:      time.Now(),
	}
	if err := s.reports.SaveBattleReport(ctx, report); err != nil {
		logs.Error("save battle report failed",
			zap.Int64("worldId", int64(world.ID)),
			zap.Error(err))
	}
}

// baseReserve 国库底额，和封赏命令共用同一组世界配置键。
func baseReserve(world *domain.World) (int64, int64) {
	gold := int64(1000)
	rice := int64(1000)
	if world.Config != nil {
		if v, ok := toInt64(world.Config["baseGold"]); ok {
			gold = v
		}
		if v, ok := toInt64(world.Config["baseRice"]); ok {
			rice = v
		}
	}
	return gold, rice
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
