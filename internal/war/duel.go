package war

import (
	"fmt"
	"math"

	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

// 比试科目
const (
	DuelTotal      = 0 // 综合：三维合计折算
	DuelLeadership = 1
	DuelStrength   = 2
	DuelIntel      = 3
)

// 赛制：淘汰赛十合内不分胜负算平，友谊赛打满一百合按余力判定
const (
	DuelKnockout = 0
	DuelFriendly = 1
)

// DuelStats 参赛者三维。
type DuelStats struct {
	Leadership float64
	Strength   float64
	Intel      float64
}

// DuelParticipant 参赛者快照。Level 影响气力的等级压制系数。
type DuelParticipant struct {
	ID    int64
	Name  string
	Stats DuelStats
	Level int
}

// DuelContext 定位一场比试在赛程中的位置，参与随机种子派生。
type DuelContext struct {
	OpenYear   int
	OpenMonth  int
	Stage      int
	Phase      int
	MatchIndex int
}

// DuelInput 一场比试的全部输入。相同输入必然复现相同的比试过程。
type DuelInput struct {
	Type       int
	BattleType int
	Attacker   DuelParticipant
	Defender   DuelParticipant
	Context    DuelContext
	BaseSeed   string
}

// DuelLogEntry 每合的气力与伤害明细。
type DuelLogEntry struct {
	Phase          int    `json:"phase" bson:"phase"`
	AttackerEnergy int    `json:"attackerEnergy" bson:"attackerEnergy"`
	DefenderEnergy int    `json:"defenderEnergy" bson:"defenderEnergy"`
	AttackerDamage int    `json:"attackerDamage" bson:"attackerDamage"`
	DefenderDamage int    `json:"defenderDamage" bson:"defenderDamage"`
	Text           string `json:"text" bson:"text"`
}

// DuelResult 比试结果。平局时 WinnerID 和 LoserID 都是零。
type DuelResult struct {
	WinnerID            int64
	LoserID             int64
	Draw                bool
	Rounds              int
	AttackerTotalDamage int
	DefenderTotalDamage int
	Logs                []string
	LogEntries          []DuelLogEntry
}

// ResolveDuel 按合结算一场比试。
// 每合双方同时出手，落后方有怒气爆发的翻盘机会，首合强弱悬殊时有奇袭加成。
func ResolveDuel(input DuelInput) *DuelResult {
	attacker := input.Attacker
	defender := input.Defender

	attackerStat := duelStat(input.Type, attacker.Stats)
	defenderStat := duelStat(input.Type, defender.Stats)

	r := duelRand(input)

	ratio := levelRatio(attacker.Level, defender.Level)
	energyBaseAttacker := roundInt(attackerStat * ratio * 10)
	energyBaseDefender := roundInt(defenderStat * ratio * 10)
	energyAttacker := energyBaseAttacker
	energyDefender := energyBaseDefender

	maxTurns := 100
	if input.BattleType == DuelKnockout {
		maxTurns = 10
	}

	res := &DuelResult{}
	res.Logs = append(res.Logs, fmt.Sprintf("%s (%d) vs (%d) %s",
		attacker.Name, energyBaseAttacker, energyBaseDefender, defender.Name))

	// 0 攻方胜，1 守方胜，2 平
	selected := 2

	for phase := 1; phase <= maxTurns; phase++ {
		damageAttacker := roundInt(defenderStat * float64(duelInt(r, 0, 22)+90) / 130)
		damageDefender := roundInt(attackerStat * float64(duelInt(r, 0, 22)+90) / 130)

		// 追击
		if attackerStat >= float64(duelInt(r, 0, 101)) {
			damageDefender += roundInt(attackerStat * float64(duelInt(r, 0, 42)+10) / 130)
		}
		if defenderStat >= float64(duelInt(r, 0, 101)) {
			damageAttacker += roundInt(defenderStat * float64(duelInt(r, 0, 42)+10) / 130)
		}

		// 怒气爆发：气力跌破两成且本合占优时有机会打出倍率一击
		criticalAttacker := false
		criticalDefender := false
		factorAttacker := 1
		factorDefender := 1

		if energyBaseAttacker/5 > energyAttacker &&
			damageAttacker > damageDefender &&
			attackerStat >= float64(duelInt(r, 0, 301)) {
			factorDefender = roundInt(float64(duelInt(r, 0, 302)+200) / 100.0)
			criticalAttacker = true
			res.Logs = append(res.Logs, fmt.Sprintf("%s strikes in fury!", attacker.Name))
		}
		if energyBaseDefender/5 > energyDefender &&
			damageDefender > damageAttacker &&
			defenderStat >= float64(duelInt(r, 0, 301)) {
			factorAttacker = roundInt(float64(duelInt(r, 0, 302)+200) / 100.0)
			criticalDefender = true
			res.Logs = append(res.Logs, fmt.Sprintf("%s strikes in fury!", defender.Name))
		}

		damageAttacker *= factorAttacker
		damageDefender *= factorDefender

		if phase == 1 {
			// 奇袭：首合实力压过对方一成以上
			if attackerStat*0.9 > defenderStat && attackerStat >= float64(duelInt(r, 0, 401)) {
				damageDefender += roundInt(attackerStat * float64(duelInt(r, 0, 32)+70) / 100)
			}
			if defenderStat*0.9 > attackerStat && defenderStat >= float64(duelInt(r, 0, 401)) {
				damageAttacker += roundInt(defenderStat * float64(duelInt(r, 0, 32)+70) / 100)
			}
		} else {
			if !criticalAttacker && attackerStat >= float64(duelInt(r, 0, 1001)) {
				damageDefender += roundInt(attackerStat * float64(duelInt(r, 0, 32)+20) / 100)
			}
			if !criticalDefender && defenderStat >= float64(duelInt(r, 0, 1001)) {
				damageAttacker += roundInt(defenderStat * float64(duelInt(r, 0, 32)+20) / 100)
			}
		}

		if damageAttacker < 0 {
			damageAttacker = 0
		}
		if damageDefender < 0 {
			damageDefender = 0
		}

		energyAttacker -= damageAttacker
		energyDefender -= damageDefender
		res.AttackerTotalDamage += damageAttacker
		res.DefenderTotalDamage += damageDefender

		entryText := fmt.Sprintf("round %02d: %03d(-%03d) vs (-%03d)%03d",
			phase, energyAttacker, damageAttacker, damageDefender, energyDefender)
		res.Logs = append(res.Logs, entryText)
		res.LogEntries = append(res.LogEntries, DuelLogEntry{
			Phase:          phase,
			AttackerEnergy: energyAttacker,
			DefenderEnergy: energyDefender,
			AttackerDamage: damageAttacker,
			DefenderDamage: damageDefender,
			Text:           entryText,
		})

		if energyAttacker <= 0 && energyDefender <= 0 {
			if input.BattleType == DuelKnockout {
				selected = 2
				break
			}
			if energyAttacker > energyDefender {
				selected = 0
			} else {
				selected = 1
			}
			break
		}
		if energyAttacker <= 0 {
			selected = 1
			break
		}
		if energyDefender <= 0 {
			selected = 0
			break
		}
	}

	switch selected {
	case 0:
		res.Logs = append(res.Logs, fmt.Sprintf("%s wins!", attacker.Name))
		res.WinnerID = attacker.ID
		res.LoserID = defender.ID
	case 1:
		res.Logs = append(res.Logs, fmt.Sprintf("%s wins!", defender.Name))
		res.WinnerID = defender.ID
		res.LoserID = attacker.ID
	default:
		res.Logs = append(res.Logs, fmt.Sprintf("%s draws!", attacker.Name))
		res.Draw = true
	}
	res.Rounds = len(res.LogEntries)

	return res
}

func duelRand(input DuelInput) *rng.Rand {
	return rng.New(input.BaseSeed,
		"Tournament",
		fmt.Sprintf("open:%d-%d", input.Context.OpenYear, input.Context.OpenMonth),
		fmt.Sprintf("stage:%d", input.Context.Stage),
		fmt.Sprintf("phase:%d", input.Context.Phase),
		fmt.Sprintf("match:%d", input.Context.MatchIndex),
		"participant:0",
		fmt.Sprintf("extra:%d:%d", input.Attacker.ID, input.Defender.ID),
		fmt.Sprintf("seed:%s", input.BaseSeed),
	)
}

// duelInt 区间不足两个值时不消耗随机流，保持与旧版比试的随机序列一致。
func duelInt(r *rng.Rand, from, until int64) int64 {
	if until-from <= 1 {
		return from
	}
	return r.NextIntRange(from, until)
}

func duelStat(duelType int, stats DuelStats) float64 {
	switch duelType {
	case DuelLeadership:
		return stats.Leadership
	case DuelStrength:
		return stats.Strength
	case DuelIntel:
		return stats.Intel
	default:
		return (stats.Leadership + stats.Strength + stats.Intel) * (7.0 / 15.0)
	}
}

// levelRatio 等级差的对数压制：高十级大约抬一成气力。
func levelRatio(lvl1, lvl2 int) float64 {
	if lvl1 >= lvl2 {
		return 1 + math.Log10(1+float64(lvl1-lvl2))/10
	}
	return 1 - math.Log10(1+float64(lvl2-lvl1))/10
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
