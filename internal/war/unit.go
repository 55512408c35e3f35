// Package war 战斗结算。纯函数式：输入双方单位和随机源，
// 输出伤害与占领结果，落库由上层服务完成。
package war

import (
	"math"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
)

// Unit 参战单位。城防也是一个单位，攻城阶段与守军阶段共用一套相位逻辑。
type Unit interface {
	Name() string
	NationID() domain.NationID
	HP() int
	Alive() bool
	TakeDamage(dmg int)

	BaseAttack() float64
	BaseDefence() float64
	Train() int
	Atmos() int

	// BattleOrder 防守方按此值降序迎战
	BattleOrder() float64
	// ContinueWar 还能不能打：兵力和军粮双重检查
	ContinueWar() bool

	CriticalChance() float64
	DodgeChance() float64
	MagicChance() float64
	MagicPower() float64
}

// GeneralUnit 武将参战快照。结算期间改快照，结束时 ApplyResults 写回。
type GeneralUnit struct {
	General *domain.General
	Tech    float64

	hp     int
	maxHP  int
	rice   int64
	train  int
	atmos  int
	injury int
}

func NewGeneralUnit(g *domain.General, nationTech float64) *GeneralUnit {
	return &GeneralUnit{
		General: g,
		Tech:    nationTech,
		hp:      g.Crew,
		maxHP:   g.Crew,
		rice:    g.Rice,
		train:   g.Train,
		atmos:   g.Atmos,
		injury:  g.Injury,
	}
}

func (u *GeneralUnit) Name() string              { return u.General.Name }
func (u *GeneralUnit) NationID() domain.NationID { return u.General.NationID }
func (u *GeneralUnit) HP() int                   { return u.hp }
func (u *GeneralUnit) Alive() bool               { return u.hp > 0 }
func (u *GeneralUnit) Train() int                { return u.train }
func (u *GeneralUnit) Atmos() int                { return u.atmos }
func (u *GeneralUnit) Rice() int64               { return u.rice }
func (u *GeneralUnit) Injury() int               { return u.injury }

func (u *GeneralUnit) TakeDamage(dmg int) {
	u.hp -= dmg
	if u.hp < 0 {
		u.hp = 0
	}
}

func (u *GeneralUnit) BaseAttack() float64 {
	stat := float64(u.General.Strength)*0.7 + float64(u.General.Leadership)*0.3
	return stat * (1.0 + u.Tech/1000.0)
}

func (u *GeneralUnit) BaseDefence() float64 {
	stat := float64(u.General.Leadership)*0.5 +
		float64(u.General.Strength)*0.3 +
		float64(u.General.Intel)*0.2
	return stat * (1.0 + u.Tech/1000.0)
}

func (u *GeneralUnit) BattleOrder() float64 {
	stats := u.General.Leadership + u.General.Strength + u.General.Intel
	return float64(u.hp)*float64(u.train+u.atmos)/2.0 + float64(stats)*10.0
}

func (u *GeneralUnit) ContinueWar() bool {
	if u.hp <= 0 {
		return false
	}
	return u.rice > int64(u.hp/100)
}

// ConsumeRice 每相位按造成的伤害吃粮，至少一石。
func (u *GeneralUnit) ConsumeRice(damageDealt int) {
	consumption := int64(damageDealt / 100)
	if consumption < 1 {
		consumption = 1
	}
	u.rice -= consumption
	if u.rice < 0 {
		u.rice = 0
	}
}

func (u *GeneralUnit) CriticalChance() float64 {
	return 0.1
}

func (u *GeneralUnit) DodgeChance() float64 {
	if info, ok := domain.CrewTypeByCode(u.General.CrewType); ok {
		return float64(info.Avoid) / 100.0
	}
	return 0.1
}

func (u *GeneralUnit) MagicChance() float64 {
	coef := 1.0
	if info, ok := domain.CrewTypeByCode(u.General.CrewType); ok {
		coef = info.MagicCoef
	}
	chance := float64(u.General.Intel) / 400.0
	if chance > 0.25 {
		chance = 0.25
	}
	return chance * coef
}

// MagicPower 计略伤害：智力 × 2 × 兵种系数。
func (u *GeneralUnit) MagicPower() float64 {
	coef := 1.0
	if info, ok := domain.CrewTypeByCode(u.General.CrewType); ok {
		coef = info.MagicCoef
	}
	return float64(u.General.Intel) * 2.0 * coef
}

func (u *GeneralUnit) LoseAtmos(n int) {
	u.atmos -= n
	if u.atmos < 0 {
		u.atmos = 0
	}
}

func (u *GeneralUnit) AddInjury(n int) {
	u.injury += n
	if u.injury > 80 {
		u.injury = 80
	}
}

// ApplyResults 把快照写回武将实体。
func (u *GeneralUnit) ApplyResults() {
	u.General.Crew = u.hp
	u.General.Rice = u.rice
	u.General.Train = u.train
	u.General.Atmos = u.atmos
	u.General.Injury = u.injury
}

// CityUnit 城防单位。耐久来自守备值，城墙抬高攻防。
type CityUnit struct {
	City *domain.City

	hp int
}

func NewCityUnit(c *domain.City) *CityUnit {
	return &CityUnit{City: c, hp: c.Def * 10}
}

func (u *CityUnit) Name() string              { return u.City.Name }
func (u *CityUnit) NationID() domain.NationID { return u.City.NationID }
func (u *CityUnit) HP() int                   { return u.hp }
func (u *CityUnit) Alive() bool               { return u.hp > 0 }
func (u *CityUnit) Train() int                { return 50 }
func (u *CityUnit) Atmos() int                { return 50 }

func (u *CityUnit) TakeDamage(dmg int) {
	u.hp -= dmg
	if u.hp < 0 {
		u.hp = 0
	}
}

func (u *CityUnit) BaseAttack() float64 {
	return float64(u.City.Def+u.City.Wall*9)/500.0 + 200.0
}

func (u *CityUnit) BaseDefence() float64 {
	return u.BaseAttack() * 1.5
}

func (u *CityUnit) BattleOrder() float64 { return math.Inf(-1) }
func (u *CityUnit) ContinueWar() bool    { return u.hp > 0 }

func (u *CityUnit) CriticalChance() float64 { return 0 }
func (u *CityUnit) DodgeChance() float64    { return 0 }
func (u *CityUnit) MagicChance() float64    { return 0 }
func (u *CityUnit) MagicPower() float64     { return 0 }

// ApplyResults 攻城伤害按比例写回守备值。
func (u *CityUnit) ApplyResults() {
	u.City.Def = u.hp / 10
}
