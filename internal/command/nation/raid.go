package nation

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const (
	raidPostReqTurn = 24
	// 任意战略命令发动后全国共享的封锁回合数
	strategicGlobalDelay = 9
)

// Raid 战略命令：派细作袭扰敌城，焚毁农商设施。
// 发动后整个势力的战略命令进入共享冷却。
type Raid struct {
	*command.Base
}

func NewRaid(b *command.Base) command.Command { return &Raid{Base: b} }

func (c *Raid) ActionName() string { return "sabotage raid" }

func (c *Raid) PostReqTurn() int { return raidPostReqTurn }

func (c *Raid) Constraints() []command.Constraint {
	return []command.Constraint{
		command.OccupiedCity(false),
		command.BeChief(),
		command.ExistsDestNation(),
		command.ExistsDestCity(),
		command.AtWarWithDestNation(),
		command.AvailableStrategicCommand(),
	}
}

func (c *Raid) Run(r *rng.Rand) command.Result {
	date := c.Env.FormatDate()
	if c.Nation == nil {
		return command.Fail("nation not found")
	}
	if c.DestCity == nil || c.DestNation == nil {
		return command.Fail("target not found")
	}
	if c.DestCity.NationID != c.DestNation.ID {
		return command.Fail("city does not belong to the target nation")
	}

	// 焚毁两到四成的农商设施
	agriLoss := int(float64(c.DestCity.Agri) * (0.2 + r.NextFloat()*0.2))
	commLoss := int(float64(c.DestCity.Comm) * (0.2 + r.NextFloat()*0.2))
	c.DestCity.Agri -= agriLoss
	c.DestCity.Comm -= commLoss

	c.Nation.StrategicCmdLimit = strategicGlobalDelay
	c.General.Experience += 5
	c.General.Dedication += 5

	c.PushLog(fmt.Sprintf("Raided %s: agriculture -%d, commerce -%d. %s",
		c.DestCity.Name, agriLoss, commLoss, date))
	return command.Result{Success: true, Logs: c.Logs()}
}
