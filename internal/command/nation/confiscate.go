package nation

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

// Confiscate 君主没收麾下武将的金钱或军粮充公。
// 被没收的武将背叛计数 +1，封顶 5。
type Confiscate struct {
	*command.Base
}

func NewConfiscate(b *command.Base) command.Command { return &Confiscate{Base: b} }

func (c *Confiscate) ActionName() string { return "confiscation" }

func (c *Confiscate) isGold() bool {
	if v, ok := c.Arg["isGold"].(bool); ok {
		return v
	}
	return true
}

func (c *Confiscate) Constraints() []command.Constraint {
	return []command.Constraint{
		command.NotBeNeutral(),
		command.OccupiedCity(false),
		command.BeChief(),
		command.SuppliedCity(),
		command.ExistsDestGeneral(),
		command.FriendlyDestGeneral(),
	}
}

func (c *Confiscate) Run(r *rng.Rand) command.Result {
	date := c.Env.FormatDate()
	if c.DestGeneral == nil {
		return command.Fail("target general not found")
	}
	if c.Nation == nil {
		return command.Fail("nation not found")
	}

	amount, ok := c.ArgInt64("amount")
	if !ok {
		amount = 100
	}
	if amount < 100 {
		amount = 100
	}
	if amount > maxResourceActionAmount {
		amount = maxResourceActionAmount
	}

	if c.isGold() {
		if amount > c.DestGeneral.Gold {
			amount = c.DestGeneral.Gold
		}
		c.DestGeneral.Gold -= amount
		c.Nation.Gold += amount
		c.PushLog(fmt.Sprintf("Confiscated %d gold from %s. %s", amount, c.DestGeneral.Name, date))
	} else {
		if amount > c.DestGeneral.Rice {
			amount = c.DestGeneral.Rice
		}
		c.DestGeneral.Rice -= amount
		c.Nation.Rice += amount
		c.PushLog(fmt.Sprintf("Confiscated %d rice from %s. %s", amount, c.DestGeneral.Name, date))
	}

	if c.DestGeneral.Betray < 5 {
		c.DestGeneral.Betray++
	}

	return command.Result{Success: true, Logs: c.Logs()}
}
