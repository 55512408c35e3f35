package general

import (
	"fmt"
	"math"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const (
	maxAtmosByCommand = 80
	atmosDelta        = 0.05
)

// Morale 犒赏部队鼓舞士气。金费按兵力摊，训练度被磨掉一成。
type Morale struct {
	*command.Base
}

func NewMorale(b *command.Base) command.Command { return &Morale{Base: b} }

func (c *Morale) ActionName() string { return "morale boost" }

func (c *Morale) Cost() command.Cost {
	return command.Cost{Gold: int64(c.General.Crew / 100)}
}

func (c *Morale) Constraints() []command.Constraint {
	cost := c.Cost()
	return []command.Constraint{
		command.NotBeNeutral(),
		command.NotWandering(),
		command.OccupiedCity(false),
		command.ReqGeneralCrew(1),
		command.ReqGeneralGold(cost.Gold),
		command.ReqGeneralAtmosMargin(maxAtmosByCommand),
	}
}

func (c *Morale) Run(r *rng.Rand) command.Result {
	raw := float64(c.General.Leadership) * 100.0 / float64(c.General.Crew) * atmosDelta
	score := int(math.Round(raw))
	if score < 0 {
		score = 0
	}
	if room := maxAtmosByCommand - c.General.Atmos; score > room {
		score = room
	}
	if score < 0 {
		score = 0
	}

	trainAfter := int(float64(c.General.Train) * drillSideEffectRate)
	if trainAfter < 0 {
		trainAfter = 0
	}

	c.PushLog(fmt.Sprintf("Morale rose by %d. %s", score, c.Env.FormatDate()))

	cost := c.Cost()
	return command.Result{
		Success: true,
		Logs:    c.Logs(),
		Effects: &command.Effects{
			General: &command.GeneralDelta{
				Gold:          -cost.Gold,
				Atmos:         score,
				Train:         trainAfter - c.General.Train,
				Experience:    100,
				Dedication:    70,
				LeadershipExp: 1,
			},
			Dex: &command.DexDelta{CrewType: c.General.CrewType, Amount: int64(score)},
		},
	}
}
