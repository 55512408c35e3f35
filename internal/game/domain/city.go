package domain

// frontState
const (
	FrontNone   int8 = 0
	FrontBorder int8 = 1 // 与敌接壤
	FrontSafe   int8 = 2
	FrontWar    int8 = 3 // 交战前线
)

// 城市特殊状态（state 列），由命令或事件设置并随回合衰减。
const (
	CityStateNormal   int8 = 0
	CityStateInvaded  int8 = 43 // 被出兵指向
)

type City struct {
	ID          CityID   `gorm:"column:id;primaryKey;comment:城市ID" json:"id"`
	WorldID     WorldID  `gorm:"column:world_id;index;not null" json:"world_id"`
	Name        string   `gorm:"column:name;type:varchar(64);not null;comment:城市名" json:"name"`
	NationID    NationID `gorm:"column:nation_id;index;not null;default:0;comment:所属势力" json:"nation_id"`
	Level       int8     `gorm:"column:level;not null;default:1;comment:城市规模" json:"level"`
	Pop         int      `gorm:"column:pop;not null;comment:人口" json:"pop"`
	PopMax      int      `gorm:"column:pop_max;not null" json:"pop_max"`
	Agri        int      `gorm:"column:agri;not null;comment:农业" json:"agri"`
	AgriMax     int      `gorm:"column:agri_max;not null" json:"agri_max"`
	Comm        int      `gorm:"column:comm;not null;comment:商业" json:"comm"`
	CommMax     int      `gorm:"column:comm_max;not null" json:"comm_max"`
	Secu        int      `gorm:"column:secu;not null;comment:治安" json:"secu"`
	SecuMax     int      `gorm:"column:secu_max;not null" json:"secu_max"`
	Def         int      `gorm:"column:def;not null;comment:守备" json:"def"`
	DefMax      int      `gorm:"column:def_max;not null" json:"def_max"`
	Wall        int      `gorm:"column:wall;not null;comment:城墙" json:"wall"`
	WallMax     int      `gorm:"column:wall_max;not null" json:"wall_max"`
	Trust       float64  `gorm:"column:trust;not null;default:50;comment:民心 0-100" json:"trust"`
	SupplyState int8     `gorm:"column:supply_state;not null;default:1;comment:补给状态" json:"supply_state"`
	FrontState  int8     `gorm:"column:front_state;not null;default:0;comment:前线状态" json:"front_state"`
	State       int8     `gorm:"column:state;not null;default:0;comment:特殊状态" json:"state"`
	StateTerm   int      `gorm:"column:state_term;not null;default:0;comment:特殊状态剩余回合" json:"state_term"`
	Dead        int64    `gorm:"column:dead;not null;default:0;comment:累计战死" json:"dead"`
	Trade       *int     `gorm:"column:trade;comment:市价 空为不通商" json:"trade,omitempty"`
	Adjacent    []int64  `gorm:"column:adjacent;serializer:json;comment:相邻城市" json:"adjacent"`
}

func (City) TableName() string { return "city" }

func (c *City) IsSupplied() bool {
	return c.SupplyState > 0
}

// IsFrontline 与敌接壤或处于交战前线。
func (c *City) IsFrontline() bool {
	return c.FrontState == FrontBorder || c.FrontState == FrontWar
}

func (c *City) AdjacentIDs() []CityID {
	out := make([]CityID, 0, len(c.Adjacent))
	for _, id := range c.Adjacent {
		out = append(out, CityID(id))
	}
	return out
}
