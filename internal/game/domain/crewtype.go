package domain

// 兵种代号，与 General.Dex1..Dex5 一一对应。
const (
	CrewFootman int8 = 1
	CrewArcher  int8 = 2
	CrewCavalry int8 = 3
	CrewSiege   int8 = 4
	CrewNavy    int8 = 5
)

// CrewTypeInfo 兵种静态属性。Cost 是每百人的基础募兵金费。
type CrewTypeInfo struct {
	Code    int8
	Name    string
	Cost    float64
	Attack  float64
	Defence float64
	Speed   int
	Avoid   int
	// MagicCoef 计略系数，攻城兵种为 0
	MagicCoef float64
}

var crewTypes = map[int8]CrewTypeInfo{
	CrewFootman: {Code: CrewFootman, Name: "footman", Cost: 10, Attack: 100, Defence: 110, Speed: 7, Avoid: 10, MagicCoef: 1.0},
	CrewArcher:  {Code: CrewArcher, Name: "archer", Cost: 12, Attack: 100, Defence: 95, Speed: 8, Avoid: 15, MagicCoef: 1.0},
	CrewCavalry: {Code: CrewCavalry, Name: "cavalry", Cost: 15, Attack: 120, Defence: 90, Speed: 10, Avoid: 10, MagicCoef: 0.8},
	CrewSiege:   {Code: CrewSiege, Name: "siege engine", Cost: 20, Attack: 130, Defence: 70, Speed: 4, Avoid: 3, MagicCoef: 0},
	CrewNavy:    {Code: CrewNavy, Name: "navy", Cost: 15, Attack: 110, Defence: 100, Speed: 8, Avoid: 10, MagicCoef: 1.0},
}

func CrewTypeByCode(code int8) (CrewTypeInfo, bool) {
	info, ok := crewTypes[code]
	return info, ok
}

// CrewTypeName 未知代号时退化为通称。
func CrewTypeName(code int8) string {
	if info, ok := crewTypes[code]; ok {
		return info.Name
	}
	return "soldiers"
}

// CrewTypeCost 未知兵种按 10 计。
func CrewTypeCost(code int8) float64 {
	if info, ok := crewTypes[code]; ok {
		return info.Cost
	}
	return 10
}
