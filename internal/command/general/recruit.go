package general

import (
	"fmt"
	"math"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const (
	minRecruitAmount       = 100
	minAvailableRecruitPop = 3000
	minTrustForRecruit     = 20
)

// Recruit 征兵/募兵共用骨架。募兵更贵但初始训练、士气更高，
// 且本身折损的民心只有征兵的一半（costOffset 分摊）。
type Recruit struct {
	*command.Base

	name         string
	costOffset   int
	defaultTrain int
	defaultAtmos int
}

func NewDraft(b *command.Base) command.Command {
	return &Recruit{Base: b, name: "conscription", costOffset: 1, defaultTrain: 40, defaultAtmos: 40}
}

func NewLevy(b *command.Base) command.Command {
	return &Recruit{Base: b, name: "paid recruitment", costOffset: 2, defaultTrain: 70, defaultAtmos: 70}
}

func (c *Recruit) ActionName() string { return c.name }

func (c *Recruit) reqCrewType() int8 {
	n, _ := c.ArgInt64("crewType")
	return int8(n)
}

func (c *Recruit) reqAmount() int {
	n, _ := c.ArgInt64("amount")
	if n < minRecruitAmount {
		return minRecruitAmount
	}
	return int(n)
}

// maxCrew 实际能募到的人数：受统率上限和请求量共同约束，
// 同兵种续募时上限里要扣掉已有兵力。
func (c *Recruit) maxCrew() int {
	max := c.General.Leadership * 100
	if c.reqCrewType() == c.General.CrewType {
		max -= c.General.Crew
	}
	if max < 0 {
		max = 0
	}
	if req := c.reqAmount(); req < max {
		return req
	}
	return max
}

func (c *Recruit) Cost() command.Cost {
	mc := c.maxCrew()
	unitCost := domain.CrewTypeCost(c.reqCrewType())
	gold := unitCost * c.NationTechCostFactor() * float64(mc) / 100.0 * float64(c.costOffset)
	rice := float64(mc) / 100.0
	return command.Cost{Gold: int64(math.Round(gold)), Rice: int64(math.Round(rice))}
}

func (c *Recruit) Constraints() []command.Constraint {
	cost := c.Cost()
	mc := c.maxCrew()
	return []command.Constraint{
		command.NotBeNeutral(),
		command.OccupiedCity(false),
		command.ReqCityCapacity("pop", "population", minAvailableRecruitPop+mc),
		command.ReqCityTrust(minTrustForRecruit),
		command.ReqGeneralGold(cost.Gold),
		command.ReqGeneralRice(cost.Rice),
		command.ReqCrewMargin(c.reqCrewType()),
		command.AvailableCrewType(c.reqCrewType()),
	}
}

func (c *Recruit) Run(r *rng.Rand) command.Result {
	date := c.Env.FormatDate()
	reqCrew := c.maxCrew()
	crewType := c.reqCrewType()
	currCrew := c.General.Crew
	typeName := domain.CrewTypeName(crewType)

	var newCrew, newTrain, newAtmos int
	if crewType == c.General.CrewType && currCrew > 0 {
		// 同兵种续募：训练、士气按人数加权摊薄
		newTrain = (currCrew*c.General.Train + reqCrew*c.defaultTrain) / (currCrew + reqCrew)
		newAtmos = (currCrew*c.General.Atmos + reqCrew*c.defaultAtmos) / (currCrew + reqCrew)
		newCrew = currCrew + reqCrew
		c.PushLog(fmt.Sprintf("Recruited %d more %s. %s", reqCrew, typeName, date))
	} else {
		newCrew = reqCrew
		newTrain = c.defaultTrain
		newAtmos = c.defaultAtmos
		c.PushLog(fmt.Sprintf("Recruited %d %s. %s", reqCrew, typeName, date))
	}

	cost := c.Cost()

	trustLoss := 0.0
	if c.City != nil && c.City.Pop > 0 {
		trustLoss = float64(reqCrew) / float64(c.City.Pop) / float64(c.costOffset) * 100.0
		trustLoss = math.Min(trustLoss, c.City.Trust)
	}

	ct := crewType
	return command.Result{
		Success: true,
		Logs:    c.Logs(),
		Effects: &command.Effects{
			General: &command.GeneralDelta{
				Crew:          newCrew - currCrew,
				CrewType:      &ct,
				Train:         newTrain - c.General.Train,
				Atmos:         newAtmos - c.General.Atmos,
				Gold:          -cost.Gold,
				Rice:          -cost.Rice,
				Experience:    reqCrew / 100,
				Dedication:    reqCrew / 100,
				LeadershipExp: 1,
			},
			City: &command.CityDelta{
				Pop:   -reqCrew,
				Trust: -math.Round(trustLoss),
			},
			Dex: &command.DexDelta{CrewType: crewType, Amount: int64(reqCrew / 100)},
		},
	}
}
