package war

import (
	"fmt"
	"math"
	"sort"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

// armPerPhase 每相位的基准战力。
const armPerPhase = 500.0

// Result 一场战斗的结算结果。日志面向战报，伤害面向统计。
type Result struct {
	AttackerWon         bool
	CityOccupied        bool
	AttackerDamageDealt int
	DefenderDamageDealt int
	Logs                []string
}

func (r *Result) Occupied() bool { return r.CityOccupied }

// Engine 战斗结算器。MaxSiegeRounds 限制攻城阶段的相位数，
// 防止高战力低耗粮的死循环拖垮整个回合。
type Engine struct {
	MaxSiegeRounds int
}

func NewEngine() *Engine {
	return &Engine{MaxSiegeRounds: 50}
}

// Resolve 攻方依次迎战守军（战斗序降序），守军清场后转入攻城。
// 随机源由调用方按世界种子派生，同样的输入必然得到同样的结果。
func (e *Engine) Resolve(attacker *GeneralUnit, defenders []*GeneralUnit, city *domain.City, r *rng.Rand) *Result {
	res := &Result{AttackerWon: true}

	sorted := make([]*GeneralUnit, len(defenders))
	copy(sorted, defenders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BattleOrder() > sorted[j].BattleOrder()
	})

	for _, defender := range sorted {
		if !attacker.ContinueWar() {
			res.AttackerWon = false
			break
		}
		if !defender.Alive() {
			continue
		}

		for attacker.ContinueWar() && defender.ContinueWar() {
			atkDmg, defDmg := e.combatPhase(attacker, defender, r)
			res.AttackerDamageDealt += atkDmg
			res.DefenderDamageDealt += defDmg
		}

		res.Logs = append(res.Logs, fmt.Sprintf("%s engaged %s", attacker.Name(), defender.Name()))
		if !attacker.ContinueWar() {
			res.Logs = append(res.Logs, fmt.Sprintf("%s retreats", attacker.Name()))
			res.AttackerWon = false
			break
		}
		res.Logs = append(res.Logs, fmt.Sprintf("%s retreats", defender.Name()))
	}

	// 守军清场且攻方还有余力时攻城
	if res.AttackerWon && attacker.ContinueWar() && allDown(sorted) {
		cityUnit := NewCityUnit(city)
		for round := 0; attacker.ContinueWar() && cityUnit.Alive(); round++ {
			if round >= e.MaxSiegeRounds {
				res.Logs = append(res.Logs, fmt.Sprintf("siege of %s stalls", city.Name))
				res.AttackerWon = false
				break
			}
			atkDmg, defDmg := e.combatPhase(attacker, cityUnit, r)
			res.AttackerDamageDealt += atkDmg
			res.DefenderDamageDealt += defDmg

			if !attacker.ContinueWar() {
				res.AttackerWon = false
			}
		}
		if !cityUnit.Alive() {
			res.CityOccupied = true
			res.Logs = append(res.Logs, fmt.Sprintf("%s has fallen", city.Name))
		}
		cityUnit.ApplyResults()
	}

	// 胜败一致的负伤判定：百分之五的概率挂彩
	if attacker.Alive() && r.NextFloat() < 0.05 {
		attacker.AddInjury(int(r.NextIntRange(1, 4)))
		res.Logs = append(res.Logs, fmt.Sprintf("%s was wounded", attacker.Name()))
	}

	attacker.ApplyResults()
	for _, d := range sorted {
		d.ApplyResults()
	}

	res.AttackerWon = res.AttackerWon && attacker.Alive()
	return res
}

// combatPhase 双方各算一次战力互扣兵力，返回（攻方伤害，守方伤害）。
func (e *Engine) combatPhase(attacker *GeneralUnit, defender Unit, r *rng.Rand) (int, int) {
	atkDmg := e.warPower(attacker, defender, r)
	defDmg := e.warPower(defender, attacker, r)

	// 必杀
	if r.NextFloat() < attacker.CriticalChance() {
		atkDmg = int(float64(atkDmg) * 1.5)
	}
	// 回避
	if r.NextFloat() < defender.DodgeChance() {
		atkDmg = int(float64(atkDmg) * 0.3)
	}
	// 计略
	if chance := attacker.MagicChance(); chance > 0 && r.NextFloat() < chance {
		atkDmg += int(attacker.MagicPower())
	}

	defender.TakeDamage(atkDmg)
	attacker.TakeDamage(defDmg)

	attacker.ConsumeRice(atkDmg)
	if d, ok := defender.(*GeneralUnit); ok {
		d.ConsumeRice(defDmg)
		d.LoseAtmos(3)
	}
	attacker.LoseAtmos(1)

	return atkDmg, defDmg
}

// warPower 一方对另一方的单相位战力。
// 基准 500 加攻减防，低于 100 时两段抬底避免零伤害，
// 再按士气、对方训练度、等级和一成随机波动修正。
func (e *Engine) warPower(attacker, defender Unit, r *rng.Rand) int {
	wp := armPerPhase + attacker.BaseAttack() - defender.BaseDefence()

	if wp < 100.0 {
		wp = math.Max(0, wp)
		wp = (wp + 100.0) / 2.0
		wp += r.NextFloat() * (100.0 - wp)
	}

	wp *= float64(attacker.Atmos())
	wp /= math.Max(1.0, float64(defender.Train()))

	if g, ok := attacker.(*GeneralUnit); ok {
		expLevel := float64(g.General.ExpLevel)
		if _, vsCity := defender.(*CityUnit); vsCity {
			wp *= 1.0 + expLevel/600.0
		} else {
			wp /= math.Max(0.01, 1.0-expLevel/300.0)
		}
	}

	wp *= 0.9 + r.NextFloat()*0.2

	wp = math.Round(wp)
	if wp < 1 {
		wp = 1
	}
	return int(wp)
}

func allDown(defenders []*GeneralUnit) bool {
	for _, d := range defenders {
		if d.ContinueWar() {
			return false
		}
	}
	return true
}
