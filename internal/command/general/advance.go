package general

import (
	"fmt"
	"math"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

// Advance 向目标城市出兵。触发战斗结算由回合服务完成，
// 这里只扣军粮、标记目标并把目标城市置为临战状态。
// 目标其实是本国城市时退化成移动（约束不满足时执行器也会改派移动）。
type Advance struct {
	*command.Base
}

func NewAdvance(b *command.Base) command.Command { return &Advance{Base: b} }

func (c *Advance) ActionName() string { return "march" }

func (c *Advance) Cost() command.Cost {
	return command.Cost{Rice: int64(math.Round(float64(c.General.Crew) / 100.0))}
}

func (c *Advance) Alternative() string { return "move" }

func (c *Advance) Constraints() []command.Constraint {
	cost := c.Cost()
	return []command.Constraint{
		command.ExistsDestCity(),
		command.NotSameDestCity(),
		command.NotBeNeutral(),
		command.OccupiedCity(false),
		command.ReqGeneralCrew(1),
		command.ReqGeneralRice(cost.Rice),
		command.BattleGroundCity(),
		command.NearCity(1),
	}
}

func (c *Advance) Run(r *rng.Rand) command.Result {
	date := c.Env.FormatDate()
	targetID := c.DestCity.ID

	// 目标已是本国领土时的兜底：直接移动过去
	if c.DestCity.NationID == c.General.NationID {
		c.PushLog(fmt.Sprintf("%s is friendly territory. Moving there instead. %s", c.DestCity.Name, date))
		return command.Result{
			Success: true,
			Logs:    c.Logs(),
			Effects: &command.Effects{
				General: &command.GeneralDelta{
					CityID:        &targetID,
					Experience:    50,
					LeadershipExp: 1,
				},
			},
		}
	}

	c.PushLog(fmt.Sprintf("Marching on %s. %s", c.DestCity.Name, date))

	cost := c.Cost()
	dexGain := int64(math.Round(float64(c.General.Crew) / 100.0))

	return command.Result{
		Success: true,
		Logs:    c.Logs(),
		Effects: &command.Effects{
			General:         &command.GeneralDelta{Rice: -cost.Rice},
			Dex:             &command.DexDelta{CrewType: c.General.CrewType, Amount: dexGain},
			BattleTriggered: true,
			TargetCityID:    targetID,
			CityStateUpdate: &command.CityStateUpdate{
				CityID: targetID,
				State:  domain.CityStateInvaded,
				Term:   3,
			},
		},
	}
}
