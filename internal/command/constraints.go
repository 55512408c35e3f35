package command

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
)

// 约束工厂。命令在 Constraints() 里按顺序声明，第一个不满足的原因原样上报。

func NotBeNeutral() Constraint {
	return Constraint{Name: "NotBeNeutral", Test: func(b *Base) string {
		if b.General.NationID == domain.NationNeutral {
			return "not serving any nation"
		}
		return ""
	}}
}

// NotWandering 流浪势力（尚未建国，level 为 0）不能做内政。
func NotWandering() Constraint {
	return Constraint{Name: "NotWandering", Test: func(b *Base) string {
		if b.Nation != nil && b.Nation.Level == 0 {
			return "a wandering force cannot do this"
		}
		return ""
	}}
}

func SuppliedCity() Constraint {
	return Constraint{Name: "SuppliedCity", Test: func(b *Base) string {
		if b.City == nil {
			return "city unavailable"
		}
		if !b.City.IsSupplied() {
			return "city supply line is cut"
		}
		return ""
	}}
}

// OccupiedCity 所在城市须属于本势力。allowNeutral 时公白地也放行。
func OccupiedCity(allowNeutral bool) Constraint {
	return Constraint{Name: "OccupiedCity", Test: func(b *Base) string {
		if b.City == nil {
			return "city unavailable"
		}
		if b.City.NationID == b.General.NationID {
			return ""
		}
		if allowNeutral && b.City.NationID == domain.NationNeutral {
			return ""
		}
		return "city is not under your nation"
	}}
}

func ReqGeneralGold(amount int64) Constraint {
	return Constraint{Name: "ReqGeneralGold", Test: func(b *Base) string {
		if b.General.Gold < amount {
			return fmt.Sprintf("not enough gold (need %d, have %d)", amount, b.General.Gold)
		}
		return ""
	}}
}

func ReqGeneralRice(amount int64) Constraint {
	return Constraint{Name: "ReqGeneralRice", Test: func(b *Base) string {
		if b.General.Rice < amount {
			return fmt.Sprintf("not enough rice (need %d, have %d)", amount, b.General.Rice)
		}
		return ""
	}}
}

func ReqGeneralCrew(minCrew int) Constraint {
	return Constraint{Name: "ReqGeneralCrew", Test: func(b *Base) string {
		if b.General.Crew < minCrew {
			return fmt.Sprintf("not enough troops (need %d)", minCrew)
		}
		return ""
	}}
}

// RemainCityCapacity 对应内政项还有提升空间。
func RemainCityCapacity(cityKey, actionName string) Constraint {
	return Constraint{Name: "RemainCityCapacity", Test: func(b *Base) string {
		if b.City == nil {
			return "city unavailable"
		}
		current, max := cityStatOf(b.City, cityKey)
		if current >= max {
			return fmt.Sprintf("%s is already at maximum", actionName)
		}
		return ""
	}}
}

// ReqCrewMargin 统率上限内还能再募兵。同兵种续募时扣掉现有兵力。
func ReqCrewMargin(crewType int8) Constraint {
	return Constraint{Name: "ReqCrewMargin", Test: func(b *Base) string {
		max := b.General.Leadership * 100
		if crewType == b.General.CrewType {
			max -= b.General.Crew
		}
		if max <= 0 {
			return "no room for more troops"
		}
		return ""
	}}
}

// AvailableCrewType 兵种代号必须是已知兵种。
func AvailableCrewType(crewType int8) Constraint {
	return Constraint{Name: "AvailableCrewType", Test: func(b *Base) string {
		if _, ok := domain.CrewTypeByCode(crewType); !ok {
			return "unknown crew type"
		}
		return ""
	}}
}

func BeChief() Constraint {
	return Constraint{Name: "BeChief", Test: func(b *Base) string {
		if b.General.OfficerLevel < domain.OfficerChief {
			return "only the ruler may do this"
		}
		return ""
	}}
}

func NotChief() Constraint {
	return Constraint{Name: "NotChief", Test: func(b *Base) string {
		if b.General.OfficerLevel >= domain.OfficerChief {
			return "the ruler may not do this"
		}
		return ""
	}}
}

func ReqOfficerLevel(minLevel int8) Constraint {
	return Constraint{Name: "ReqOfficerLevel", Test: func(b *Base) string {
		if b.General.OfficerLevel < minLevel {
			return fmt.Sprintf("officer level too low (need %d)", minLevel)
		}
		return ""
	}}
}

func ExistsDestCity() Constraint {
	return Constraint{Name: "ExistsDestCity", Test: func(b *Base) string {
		if b.DestCity == nil {
			return "destination city not found"
		}
		return ""
	}}
}

func NotSameDestCity() Constraint {
	return Constraint{Name: "NotSameDestCity", Test: func(b *Base) string {
		if b.DestCity == nil {
			return "destination city not found"
		}
		if b.General.CityID == b.DestCity.ID {
			return "already in that city"
		}
		return ""
	}}
}

// NearCity 目的地在 maxDistance 步以内（按邻接图 BFS）。
func NearCity(maxDistance int) Constraint {
	return Constraint{Name: "NearCity", Test: func(b *Base) string {
		if b.DestCity == nil {
			return "destination city not found"
		}
		d := b.Map.Distance(b.General.CityID, b.DestCity.ID)
		if d >= 0 && d <= maxDistance {
			return ""
		}
		if maxDistance == 1 {
			return "destination is not adjacent"
		}
		return "destination is too far"
	}}
}

func NotOccupiedDestCity() Constraint {
	return Constraint{Name: "NotOccupiedDestCity", Test: func(b *Base) string {
		if b.DestCity == nil {
			return "destination city not found"
		}
		if b.DestCity.NationID == b.General.NationID {
			return "cannot target your own city"
		}
		return ""
	}}
}

// BattleGroundCity 目的地为公白地或交战势力的城市。
func BattleGroundCity() Constraint {
	return Constraint{Name: "BattleGroundCity", Test: func(b *Base) string {
		if b.DestCity == nil {
			return "destination city not found"
		}
		if b.DestCity.NationID == domain.NationNeutral {
			return ""
		}
		if !b.Map.IsAtWar(b.DestCity.NationID) {
			return "destination nation is not at war with you"
		}
		return ""
	}}
}

func ReqGeneralTrainMargin(maxTrain int) Constraint {
	return Constraint{Name: "ReqGeneralTrainMargin", Test: func(b *Base) string {
		if b.General.Train >= maxTrain {
			return "troops are already fully trained"
		}
		return ""
	}}
}

func ReqGeneralAtmosMargin(maxAtmos int) Constraint {
	return Constraint{Name: "ReqGeneralAtmosMargin", Test: func(b *Base) string {
		if b.General.Atmos >= maxAtmos {
			return "morale is already high enough"
		}
		return ""
	}}
}

func RemainCityTrust(maxTrust float64) Constraint {
	return Constraint{Name: "RemainCityTrust", Test: func(b *Base) string {
		if b.City == nil {
			return "city unavailable"
		}
		if b.City.Trust >= maxTrust {
			return "public trust is already at maximum"
		}
		return ""
	}}
}

func ReqCityTrust(minTrust float64) Constraint {
	return Constraint{Name: "ReqCityTrust", Test: func(b *Base) string {
		if b.City == nil {
			return "city unavailable"
		}
		if b.City.Trust < minTrust {
			return fmt.Sprintf("public trust too low (need %.0f)", minTrust)
		}
		return ""
	}}
}

// ReqCityCapacity 城市指标达到下限，征兵等命令用它约住人口。
func ReqCityCapacity(cityKey, displayName string, minValue int) Constraint {
	return Constraint{Name: "ReqCityCapacity_" + cityKey, Test: func(b *Base) string {
		if b.City == nil {
			return "city unavailable"
		}
		current, _ := cityStatOf(b.City, cityKey)
		if current < minValue {
			return fmt.Sprintf("%s is too low (need %d, have %d)", displayName, minValue, current)
		}
		return ""
	}}
}

func ReqNationGold(amount int64) Constraint {
	return Constraint{Name: "ReqNationGold", Test: func(b *Base) string {
		if b.Nation == nil {
			return "nation unavailable"
		}
		if b.Nation.Gold < amount {
			return fmt.Sprintf("national treasury too low (need %d, have %d)", amount, b.Nation.Gold)
		}
		return ""
	}}
}

func ReqNationRice(amount int64) Constraint {
	return Constraint{Name: "ReqNationRice", Test: func(b *Base) string {
		if b.Nation == nil {
			return "nation unavailable"
		}
		if b.Nation.Rice < amount {
			return fmt.Sprintf("national granary too low (need %d, have %d)", amount, b.Nation.Rice)
		}
		return ""
	}}
}

func ExistsDestGeneral() Constraint {
	return Constraint{Name: "ExistsDestGeneral", Test: func(b *Base) string {
		if b.DestGeneral == nil {
			return "target general not found"
		}
		return ""
	}}
}

func FriendlyDestGeneral() Constraint {
	return Constraint{Name: "FriendlyDestGeneral", Test: func(b *Base) string {
		if b.DestGeneral == nil {
			return "target general not found"
		}
		if b.DestGeneral.NationID != b.General.NationID {
			return "target general serves another nation"
		}
		return ""
	}}
}

// AvailableStrategicCommand 战略命令冷却（势力级）。
func ExistsDestNation() Constraint {
	return Constraint{Name: "ExistsDestNation", Test: func(b *Base) string {
		if b.DestNation == nil {
			return "target nation not found"
		}
		return ""
	}}
}

func DifferentDestNation() Constraint {
	return Constraint{Name: "DifferentDestNation", Test: func(b *Base) string {
		if b.DestNation != nil && b.DestNation.ID == b.General.NationID {
			return "cannot target your own nation"
		}
		return ""
	}}
}

// AtWarWithDestNation 只能对交战中的势力使用。
func AtWarWithDestNation() Constraint {
	return Constraint{Name: "AtWarWithDestNation", Test: func(b *Base) string {
		if b.DestNation == nil {
			return "target nation not found"
		}
		if b.Map == nil || !b.Map.IsAtWar(b.DestNation.ID) {
			return "only usable against a nation at war with you"
		}
		return ""
	}}
}

func AvailableStrategicCommand() Constraint {
	return Constraint{Name: "AvailableStrategicCommand", Test: func(b *Base) string {
		if b.Nation == nil {
			return "nation unavailable"
		}
		if b.Nation.StrategicCmdLimit > 0 {
			return fmt.Sprintf("strategic command on cooldown (%d turns left)", b.Nation.StrategicCmdLimit)
		}
		return ""
	}}
}

func AlwaysFail(reason string) Constraint {
	return Constraint{Name: "AlwaysFail", Test: func(*Base) string {
		return reason
	}}
}

func cityStatOf(c *domain.City, key string) (current, max int) {
	switch key {
	case "agri":
		return c.Agri, c.AgriMax
	case "comm":
		return c.Comm, c.CommMax
	case "secu":
		return c.Secu, c.SecuMax
	case "def":
		return c.Def, c.DefMax
	case "wall":
		return c.Wall, c.WallMax
	case "pop":
		return c.Pop, c.PopMax
	}
	return 0, 1 << 30
}
