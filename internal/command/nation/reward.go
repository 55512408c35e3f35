package nation

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const maxResourceActionAmount = 100000

// Reward 君主从国库给麾下武将发放金钱或军粮。
// 国库要留出基准储备，不能发到见底。
type Reward struct {
	*command.Base
}

func NewReward(b *command.Base) command.Command { return &Reward{Base: b} }

func (c *Reward) ActionName() string { return "reward" }

func (c *Reward) isGold() bool {
	if v, ok := c.Arg["isGold"].(bool); ok {
		return v
	}
	return true
}

func (c *Reward) baseReserve() int64 {
	key := "baseGold"
	if !c.isGold() {
		key = "baseRice"
	}
	if v, ok := c.Env.GameStor[key]; ok {
		switch n := v.(type) {
		case int:
			return int64(n)
		case int64:
			return n
		case float64:
			return int64(n)
		}
	}
	return 1000
}

func (c *Reward) Constraints() []command.Constraint {
	if id, ok := c.ArgInt64("destGeneralID", "destGeneralId"); ok && id == int64(c.General.ID) {
		return []command.Constraint{command.AlwaysFail("cannot reward yourself")}
	}
	resource := command.ReqNationGold(1 + c.baseReserve())
	if !c.isGold() {
		resource = command.ReqNationRice(1 + c.baseReserve())
	}
	return []command.Constraint{
		command.NotBeNeutral(),
		command.OccupiedCity(false),
		command.BeChief(),
		command.SuppliedCity(),
		command.ExistsDestGeneral(),
		command.FriendlyDestGeneral(),
		resource,
	}
}

func (c *Reward) Run(r *rng.Rand) command.Result {
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
	// 按百取整后夹到 [100, 上限]
	amount = (amount + 50) / 100 * 100
	if amount < 100 {
		amount = 100
	}
	if amount > maxResourceActionAmount {
		amount = maxResourceActionAmount
	}

	reserve := c.baseReserve()
	if c.isGold() {
		if available := c.Nation.Gold - reserve; amount > available {
			amount = available
		}
		if amount <= 0 {
			return command.Fail("nation treasury is short of gold")
		}
		c.Nation.Gold -= amount
		c.DestGeneral.Gold += amount
		c.PushLog(fmt.Sprintf("Granted %d gold to %s. %s", amount, c.DestGeneral.Name, date))
	} else {
		if available := c.Nation.Rice - reserve; amount > available {
			amount = available
		}
		if amount <= 0 {
			return command.Fail("nation granary is short of rice")
		}
		c.Nation.Rice -= amount
		c.DestGeneral.Rice += amount
		c.PushLog(fmt.Sprintf("Granted %d rice to %s. %s", amount, c.DestGeneral.Name, date))
	}

	return command.Result{Success: true, Logs: c.Logs()}
}
