package general

import (
	"fmt"
	"math"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

// Domestic 内政开发命令的公共骨架。五种开发只差城市项和对应的成长属性。
type Domestic struct {
	*command.Base

	name        string
	cityKey     string // agri/comm/secu/def/wall
	statKey     string // leadership/strength/intel
	debuffFront float64
}

func (c *Domestic) ActionName() string { return c.name }

func (c *Domestic) Cost() command.Cost {
	return command.Cost{Gold: c.Env.DevelCost}
}

func (c *Domestic) Constraints() []command.Constraint {
	cost := c.Cost()
	return []command.Constraint{
		command.NotBeNeutral(),
		command.NotWandering(),
		command.OccupiedCity(false),
		command.SuppliedCity(),
		command.ReqGeneralGold(cost.Gold),
		command.ReqGeneralRice(cost.Rice),
		command.RemainCityCapacity(c.cityKey, c.name),
	}
}

func (c *Domestic) stat() int {
	switch c.statKey {
	case "leadership":
		return c.General.Leadership
	case "strength":
		return c.General.Strength
	default:
		return c.General.Intel
	}
}

func (c *Domestic) cityStat() (current, max int) {
	switch c.cityKey {
	case "agri":
		return c.City.Agri, c.City.AgriMax
	case "comm":
		return c.City.Comm, c.City.CommMax
	case "secu":
		return c.City.Secu, c.City.SecuMax
	case "def":
		return c.City.Def, c.City.DefMax
	case "wall":
		return c.City.Wall, c.City.WallMax
	}
	return 0, 0
}

func (c *Domestic) Run(r *rng.Rand) command.Result {
	date := c.Env.FormatDate()
	stat := c.stat()
	trust := math.Max(50, c.City.Trust)

	score := int(float64(stat) * (trust / 100.0) * (0.8 + r.NextFloat()*0.4))
	if score < 1 {
		score = 1
	}

	// 民心低时暴击率下降，空出来的概率补给失败一侧
	successRatio := math.Min(1.0, 0.1*(trust/80.0))
	failRatio := math.Min(1.0-successRatio, 0.1)

	roll := r.NextFloat()
	switch {
	case roll < failRatio:
		score = int(float64(score) * 0.5)
		if score < 1 {
			score = 1
		}
		c.PushLog(fmt.Sprintf("%s went poorly, gained only %d. %s", c.name, score, date))
	case roll < failRatio+successRatio:
		score = int(float64(score) * 1.5)
		c.PushLog(fmt.Sprintf("%s went exceptionally well, gained %d. %s", c.name, score, date))
	default:
		c.PushLog(fmt.Sprintf("%s gained %d. %s", c.name, score, date))
	}

	// 前线城市开发减半。建国初期的都城逐年过渡到完整减益，
	// 避免开局都城被前线判定卡死内政。
	if c.City.IsFrontline() {
		actual := c.debuffFront
		if c.Nation != nil && c.Nation.Capital == c.City.ID {
			if relYear := c.Env.RelYear(); relYear < 25 {
				scale := float64(min(max(0, relYear-5), 20)) * 0.05
				actual = scale*c.debuffFront + (1 - scale)
			}
		}
		score = int(float64(score) * actual)
	}

	current, max := c.cityStat()
	delta := score
	if current+delta > max {
		delta = max - current
	}

	exp := int(float64(score) * 0.7)
	gd := &command.GeneralDelta{
		Gold:       -c.Cost().Gold,
		Experience: exp,
		Dedication: score,
	}
	switch c.statKey {
	case "leadership":
		gd.LeadershipExp = 1
	case "strength":
		gd.StrengthExp = 1
	default:
		gd.IntelExp = 1
	}

	cd := &command.CityDelta{}
	switch c.cityKey {
	case "agri":
		cd.Agri = delta
	case "comm":
		cd.Comm = delta
	case "secu":
		cd.Secu = delta
	case "def":
		cd.Def = delta
	case "wall":
		cd.Wall = delta
	}

	return command.Result{
		Success: true,
		Logs:    c.Logs(),
		Effects: &command.Effects{General: gd, City: cd},
	}
}

func newDomestic(b *command.Base, name, cityKey, statKey string) command.Command {
	return &Domestic{Base: b, name: name, cityKey: cityKey, statKey: statKey, debuffFront: 0.5}
}

// NewDevAgri 开垦农地提升农业，吃智力。
func NewDevAgri(b *command.Base) command.Command {
	return newDomestic(b, "agriculture development", "agri", "intel")
}

// NewDevComm 投资商业，吃智力。
func NewDevComm(b *command.Base) command.Command {
	return newDomestic(b, "commerce investment", "comm", "intel")
}

// NewDevSecu 强化治安，吃统率。
func NewDevSecu(b *command.Base) command.Command {
	return newDomestic(b, "public order enforcement", "secu", "leadership")
}

// NewDevDef 加固守备，吃武力。
func NewDevDef(b *command.Base) command.Command {
	return newDomestic(b, "defence fortification", "def", "strength")
}

// NewDevWall 修缮城墙，吃武力。
func NewDevWall(b *command.Base) command.Command {
	return newDomestic(b, "wall reinforcement", "wall", "strength")
}
