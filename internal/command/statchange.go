package command

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
)

const (
	// UpgradeLimit 属性经验升一级的阈值。
	UpgradeLimit = 30
	// MaxStatLevel 属性上限。
	MaxStatLevel = 255
)

// StatChange 单项属性变动记录。
type StatChange struct {
	Stat     string
	OldValue int
	NewValue int
}

// CheckStatChange 检查三围经验是否越过升降级阈值并套用。
// 命令执行后经验有变动时调用。
func CheckStatChange(g *domain.General) []StatChange {
	var changes []StatChange

	apply := func(name string, stat *int, exp *int) {
		switch {
		case *exp < 0:
			newStat := maxInt(0, *stat-1)
			if newStat != *stat {
				changes = append(changes, StatChange{name, *stat, newStat})
			}
			*stat = newStat
			*exp += UpgradeLimit
		case *exp >= UpgradeLimit:
			if *stat < MaxStatLevel {
				changes = append(changes, StatChange{name, *stat, *stat + 1})
				*stat++
			}
			*exp -= UpgradeLimit
		}
	}

	apply("leadership", &g.Leadership, &g.LeadershipExp)
	apply("strength", &g.Strength, &g.StrengthExp)
	apply("intel", &g.Intel, &g.IntelExp)
	return changes
}

// StatChangeLogs 变动记录转成玩家日志。
func StatChangeLogs(changes []StatChange) []string {
	logs := make([]string, 0, len(changes))
	for _, c := range changes {
		if c.NewValue > c.OldValue {
			logs = append(logs, fmt.Sprintf("%s rose to %d", c.Stat, c.NewValue))
		} else {
			logs = append(logs, fmt.Sprintf("%s fell to %d", c.Stat, c.NewValue))
		}
	}
	return logs
}
