package nation

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const aidPostReqTurn = 12

// Aid 向他国输送物资。外交动作，冷却一年。
type Aid struct {
	*command.Base
}

func NewAid(b *command.Base) command.Command { return &Aid{Base: b} }

func (c *Aid) ActionName() string { return "material aid" }

func (c *Aid) PostReqTurn() int { return aidPostReqTurn }

func (c *Aid) Constraints() []command.Constraint {
	return []command.Constraint{
		command.ExistsDestNation(),
		command.OccupiedCity(false),
		command.BeChief(),
		command.SuppliedCity(),
		command.DifferentDestNation(),
	}
}

// amounts 新参数是 goldAmount/riceAmount，旧参数是 amount+isGold 二选一。
func (c *Aid) amounts() (gold, rice int64) {
	gold, _ = c.ArgInt64("goldAmount")
	rice, _ = c.ArgInt64("riceAmount")
	if gold != 0 || rice != 0 {
		return gold, rice
	}
	amount, _ := c.ArgInt64("amount")
	if isGold, ok := c.Arg["isGold"].(bool); ok {
		if isGold {
			return amount, 0
		}
		return 0, amount
	}
	return 0, 0
}

func (c *Aid) Run(r *rng.Rand) command.Result {
	date := c.Env.FormatDate()
	if c.Nation == nil {
		return command.Fail("nation not found")
	}
	if c.DestNation == nil {
		return command.Fail("target nation not found")
	}

	gold, rice := c.amounts()
	if gold < 0 {
		gold = 0
	}
	if rice < 0 {
		rice = 0
	}
	if gold > c.Nation.Gold {
		gold = c.Nation.Gold
	}
	if rice > c.Nation.Rice {
		rice = c.Nation.Rice
	}
	if gold == 0 && rice == 0 {
		return command.Fail("nothing to send")
	}

	c.Nation.Gold -= gold
	c.Nation.Rice -= rice
	c.DestNation.Gold += gold
	c.DestNation.Rice += rice

	c.PushLog(fmt.Sprintf("Sent %d gold and %d rice to %s. %s", gold, rice, c.DestNation.Name, date))
	return command.Result{Success: true, Logs: c.Logs()}
}
