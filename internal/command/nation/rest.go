// Package nation 势力命令。与武将命令不同，势力命令在 Run 里
// 直接修改实体，执行器只在成功时落库。
package nation

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

type Rest struct {
	*command.Base
}

func NewRest(b *command.Base) command.Command { return &Rest{Base: b} }

func (c *Rest) ActionName() string { return "nation rest" }

func (c *Rest) Constraints() []command.Constraint { return nil }

func (c *Rest) Run(r *rng.Rand) command.Result {
	c.PushLog(fmt.Sprintf("The council idled this month. %s", c.Env.FormatDate()))
	return command.Result{Success: true, Logs: c.Logs()}
}
