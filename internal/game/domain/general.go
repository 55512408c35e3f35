package domain

import "time"

// npcState
const (
	NpcNone    int8 = 0 // 玩家
	NpcFrozen  int8 = 1 // 玩家离线托管
	NpcNormal  int8 = 2 // NPC
	NpcWaiting int8 = 3
	NpcScout   int8 = 4
	NpcRetired int8 = 5 // 退场（放逐后的游离状态）
)

// officerLevel
const (
	OfficerNone    int8 = 0
	OfficerMinCmd  int8 = 5  // 可以执行势力回合的最低官职
	OfficerChief   int8 = 12 // 君主
)

// LastTurn 上一次执行的命令记录，带多回合命令的累计进度。
type LastTurn struct {
	Command string         `json:"command"`
	Arg     map[string]any `json:"arg,omitempty"`
	Term    int            `json:"term"`
}

// AddTermStack 同命令同参数时进度 +1，否则从 1 重新计。
func (lt LastTurn) AddTermStack(command string, arg map[string]any) LastTurn {
	if lt.Command == command && argEqual(lt.Arg, arg) {
		return LastTurn{Command: command, Arg: arg, Term: lt.Term + 1}
	}
	return LastTurn{Command: command, Arg: arg, Term: 1}
}

func argEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || av != bv {
			return false
		}
	}
	return true
}

type General struct {
	ID             GeneralID  `gorm:"column:id;primaryKey;autoIncrement;comment:武将ID" json:"id"`
	WorldID        WorldID    `gorm:"column:world_id;index;not null;comment:世界ID" json:"world_id"`
	UserID         int64      `gorm:"column:user_id;comment:所属玩家ID 0为NPC" json:"user_id"`
	Name           string     `gorm:"column:name;type:varchar(64);not null;comment:武将名" json:"name"`
	NationID       NationID   `gorm:"column:nation_id;index;not null;default:0;comment:所属势力 0在野" json:"nation_id"`
	CityID         CityID     `gorm:"column:city_id;index;not null;comment:所在城市" json:"city_id"`
	TroopID        int64      `gorm:"column:troop_id;not null;default:0;comment:所属部队" json:"troop_id"`
	NpcState       int8       `gorm:"column:npc_state;not null;default:0" json:"npc_state"`
	Leadership     int        `gorm:"column:leadership;not null;comment:统率" json:"leadership"`
	Strength       int        `gorm:"column:strength;not null;comment:武力" json:"strength"`
	Intel          int        `gorm:"column:intel;not null;comment:智力" json:"intel"`
	Politics       int        `gorm:"column:politics;not null;comment:政治" json:"politics"`
	Charm          int        `gorm:"column:charm;not null;comment:魅力" json:"charm"`
	LeadershipExp  int        `gorm:"column:leadership_exp;not null;default:0" json:"leadership_exp"`
	StrengthExp    int        `gorm:"column:strength_exp;not null;default:0" json:"strength_exp"`
	IntelExp       int        `gorm:"column:intel_exp;not null;default:0" json:"intel_exp"`
	Dex1           int64      `gorm:"column:dex1;not null;default:0;comment:步兵熟练" json:"dex1"`
	Dex2           int64      `gorm:"column:dex2;not null;default:0;comment:弓兵熟练" json:"dex2"`
	Dex3           int64      `gorm:"column:dex3;not null;default:0;comment:骑兵熟练" json:"dex3"`
	Dex4           int64      `gorm:"column:dex4;not null;default:0;comment:器械熟练" json:"dex4"`
	Dex5           int64      `gorm:"column:dex5;not null;default:0;comment:水军熟练" json:"dex5"`
	Injury         int        `gorm:"column:injury;not null;default:0;comment:负伤 0-100" json:"injury"`
	Experience     int        `gorm:"column:experience;not null;default:0;comment:功绩" json:"experience"`
	Dedication     int        `gorm:"column:dedication;not null;default:0;comment:贡献" json:"dedication"`
	OfficerLevel   int8       `gorm:"column:officer_level;not null;default:0;comment:官职" json:"officer_level"`
	OfficerCity    CityID     `gorm:"column:officer_city;not null;default:0;comment:任职城市" json:"officer_city"`
	Gold           int64      `gorm:"column:gold;not null;default:1000" json:"gold"`
	Rice           int64      `gorm:"column:rice;not null;default:1000" json:"rice"`
	Crew           int        `gorm:"column:crew;not null;default:0;comment:兵力" json:"crew"`
	CrewType       int8       `gorm:"column:crew_type;not null;default:0;comment:兵种" json:"crew_type"`
	Train          int        `gorm:"column:train;not null;default:0;comment:训练度" json:"train"`
	Atmos          int        `gorm:"column:atmos;not null;default:0;comment:士气" json:"atmos"`
	TurnTime       time.Time  `gorm:"column:turn_time;index;not null;comment:回合顺序时间" json:"turn_time"`
	KillTurn       *int16     `gorm:"column:kill_turn;comment:剩余放逐倒计时" json:"kill_turn,omitempty"`
	BlockState     int8       `gorm:"column:block_state;not null;default:0;comment:封禁状态" json:"block_state"`
	DedLevel       int8       `gorm:"column:ded_level;not null;default:0" json:"ded_level"`
	ExpLevel       int        `gorm:"column:exp_level;not null;default:0;comment:等级" json:"exp_level"`
	Belong         int        `gorm:"column:belong;not null;default:0;comment:仕官年数" json:"belong"`
	Betray         int        `gorm:"column:betray;not null;default:0;comment:背叛次数" json:"betray"`
	CommandPoints  int        `gorm:"column:command_points;not null;default:0;comment:实时指令点" json:"command_points"`
	CommandEndTime *time.Time `gorm:"column:command_end_time;comment:实时命令完成时刻" json:"command_end_time,omitempty"`
	Meta           map[string]any `gorm:"column:meta;serializer:json" json:"meta,omitempty"`
	LastTurn       LastTurn       `gorm:"column:last_turn;serializer:json" json:"last_turn"`
}

func (General) TableName() string { return "general" }

// IsNPC npcState 2 以上由 AI 接管。
func (g *General) IsNPC() bool {
	return g.NpcState >= NpcNormal
}

func (g *General) IsBlocked() bool {
	return g.BlockState >= 2
}

// DexFor 按兵种取熟练度，兵种越界返回 0。
func (g *General) DexFor(crewType int8) int64 {
	switch crewType {
	case 1:
		return g.Dex1
	case 2:
		return g.Dex2
	case 3:
		return g.Dex3
	case 4:
		return g.Dex4
	case 5:
		return g.Dex5
	}
	return 0
}

func (g *General) AddDex(crewType int8, amount int64) {
	switch crewType {
	case 1:
		g.Dex1 += amount
	case 2:
		g.Dex2 += amount
	case 3:
		g.Dex3 += amount
	case 4:
		g.Dex4 += amount
	case 5:
		g.Dex5 += amount
	}
}

func (g *General) MetaInt(key string, def int) int {
	if g.Meta == nil {
		return def
	}
	switch v := g.Meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

func (g *General) SetMeta(key string, value any) {
	if g.Meta == nil {
		g.Meta = map[string]any{}
	}
	g.Meta[key] = value
}

// Detach 脱离势力，回到在野状态。
func (g *General) Detach() {
	g.NationID = NationNeutral
	g.OfficerLevel = OfficerNone
	g.OfficerCity = 0
}
