package general

import (
	"fmt"
	"math"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const (
	maxTrainByCommand = 80
	trainDelta        = 0.05
	// 练兵会磨掉一成士气，反之亦然
	drillSideEffectRate = 0.9
)

// Train 训练部队。人越少练得越快，上限 80。
type Train struct {
	*command.Base
}

func NewTrain(b *command.Base) command.Command { return &Train{Base: b} }

func (c *Train) ActionName() string { return "troop training" }

func (c *Train) Constraints() []command.Constraint {
	return []command.Constraint{
		command.NotBeNeutral(),
		command.NotWandering(),
		command.OccupiedCity(false),
		command.ReqGeneralCrew(1),
		command.ReqGeneralTrainMargin(maxTrainByCommand),
	}
}

func (c *Train) Run(r *rng.Rand) command.Result {
	crew := c.General.Crew
	if crew < 1 {
		crew = 1
	}

	raw := float64(c.General.Leadership) * 100.0 / float64(crew) * trainDelta
	score := int(math.Round(raw))
	if score < 0 {
		score = 0
	}
	if room := maxTrainByCommand - c.General.Train; score > room {
		score = room
	}
	if score < 0 {
		score = 0
	}

	atmosAfter := int(float64(c.General.Atmos) * drillSideEffectRate)
	if atmosAfter < 0 {
		atmosAfter = 0
	}

	c.PushLog(fmt.Sprintf("Training rose by %d. %s", score, c.Env.FormatDate()))

	return command.Result{
		Success: true,
		Logs:    c.Logs(),
		Effects: &command.Effects{
			General: &command.GeneralDelta{
				Train:         score,
				Atmos:         atmosAfter - c.General.Atmos,
				Experience:    100,
				Dedication:    70,
				LeadershipExp: 1,
			},
			Dex: &command.DexDelta{CrewType: c.General.CrewType, Amount: int64(score)},
		},
	}
}
