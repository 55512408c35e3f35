// Package general 武将命令。每条命令内嵌 *command.Base，
// 只产出 Effects 增量，由执行器统一落账。
package general

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

// Rest 什么都不做。未知命令代号也会退化成休息。
type Rest struct {
	*command.Base
}

func NewRest(b *command.Base) command.Command { return &Rest{Base: b} }

func (c *Rest) ActionName() string { return "rest" }

func (c *Rest) Constraints() []command.Constraint { return nil }

func (c *Rest) Run(r *rng.Rand) command.Result {
	c.PushLog(fmt.Sprintf("Rested for the month. %s", c.Env.FormatDate()))
	return command.Result{Success: true, Logs: c.Logs()}
}
