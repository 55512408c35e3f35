package general

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const (
	atmosDecreaseOnMove = 5
	minAtmosAfterMove   = 20
)

// Move 移动到相邻城市。行军折损一点士气。
type Move struct {
	*command.Base
}

func NewMove(b *command.Base) command.Command { return &Move{Base: b} }

func (c *Move) ActionName() string { return "move" }

func (c *Move) Cost() command.Cost {
	return command.Cost{Gold: c.Env.DevelCost}
}

func (c *Move) Constraints() []command.Constraint {
	cost := c.Cost()
	return []command.Constraint{
		command.ExistsDestCity(),
		command.NotSameDestCity(),
		command.NearCity(1),
		command.ReqGeneralGold(cost.Gold),
		command.ReqGeneralRice(cost.Rice),
	}
}

func (c *Move) Run(r *rng.Rand) command.Result {
	destID := c.DestCity.ID
	c.PushLog(fmt.Sprintf("Moved to %s. %s", c.DestCity.Name, c.Env.FormatDate()))

	newAtmos := c.General.Atmos - atmosDecreaseOnMove
	if newAtmos < minAtmosAfterMove {
		newAtmos = minAtmosAfterMove
	}

	cost := c.Cost()
	return command.Result{
		Success: true,
		Logs:    c.Logs(),
		Effects: &command.Effects{
			General: &command.GeneralDelta{
				CityID:        &destID,
				Gold:          -cost.Gold,
				Atmos:         newAtmos - c.General.Atmos,
				Experience:    50,
				LeadershipExp: 1,
			},
		},
	}
}
