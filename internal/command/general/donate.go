package general

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const (
	donateMinResource       = 100
	maxResourceActionAmount = 10000
)

// Donate 向国库捐献金钱或军粮，换贡献。
type Donate struct {
	*command.Base
}

func NewDonate(b *command.Base) command.Command { return &Donate{Base: b} }

func (c *Donate) ActionName() string { return "donation" }

func (c *Donate) isGold() bool {
	if v, ok := c.Arg["isGold"].(bool); ok {
		return v
	}
	return true
}

// amount 按百取整，区间 [100, 10000]。
func (c *Donate) amount() int64 {
	raw, ok := c.ArgInt64("amount")
	if !ok {
		raw = donateMinResource
	}
	rounded := raw / 100 * 100
	if rounded < donateMinResource {
		rounded = donateMinResource
	}
	if rounded > maxResourceActionAmount {
		rounded = maxResourceActionAmount
	}
	return rounded
}

func (c *Donate) Constraints() []command.Constraint {
	cs := []command.Constraint{
		command.NotBeNeutral(),
		command.OccupiedCity(false),
		command.SuppliedCity(),
	}
	if c.isGold() {
		cs = append(cs, command.ReqGeneralGold(donateMinResource))
	} else {
		cs = append(cs, command.ReqGeneralRice(donateMinResource))
	}
	return cs
}

func (c *Donate) Run(r *rng.Rand) command.Result {
	amount := c.amount()
	gd := &command.GeneralDelta{Experience: 70, Dedication: 100, LeadershipExp: 1}
	nd := &command.NationDelta{}
	if c.isGold() {
		if have := c.General.Gold; amount > have {
			amount = have
		}
		gd.Gold = -amount
		nd.Gold = amount
		c.PushLog(fmt.Sprintf("Donated %d gold to the nation. %s", amount, c.Env.FormatDate()))
	} else {
		if have := c.General.Rice; amount > have {
			amount = have
		}
		gd.Rice = -amount
		nd.Rice = amount
		c.PushLog(fmt.Sprintf("Donated %d rice to the nation. %s", amount, c.Env.FormatDate()))
	}

	return command.Result{
		Success: true,
		Logs:    c.Logs(),
		Effects: &command.Effects{General: gd, Nation: nd},
	}
}
