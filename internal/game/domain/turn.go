package domain

// ActionRest 空回合。排队为空时的默认动作。
const ActionRest = "rest"

// GeneralTurn 武将回合队列里的一条预约，TurnIdx 越小越先执行。
type GeneralTurn struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WorldID   WorldID        `gorm:"column:world_id;index;not null" json:"world_id"`
	GeneralID GeneralID      `gorm:"column:general_id;index;not null" json:"general_id"`
	TurnIdx   int            `gorm:"column:turn_idx;not null;comment:队列序号" json:"turn_idx"`
	Action    string         `gorm:"column:action;type:varchar(64);not null;comment:动作码" json:"action"`
	Arg       map[string]any `gorm:"column:arg;serializer:json" json:"arg,omitempty"`
}

func (GeneralTurn) TableName() string { return "general_turn" }

// IsReserved 非 rest 即视为玩家实际预约过的命令。
func (t *GeneralTurn) IsReserved() bool {
	return t.Action != ActionRest
}

// NationTurn 势力回合队列，按官职分槽。
type NationTurn struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WorldID      WorldID        `gorm:"column:world_id;index;not null" json:"world_id"`
	NationID     NationID       `gorm:"column:nation_id;index;not null" json:"nation_id"`
	OfficerLevel int8           `gorm:"column:officer_level;not null;comment:执行槽位官职" json:"officer_level"`
	TurnIdx      int            `gorm:"column:turn_idx;not null" json:"turn_idx"`
	Action       string         `gorm:"column:action;type:varchar(64);not null" json:"action"`
	Arg          map[string]any `gorm:"column:arg;serializer:json" json:"arg,omitempty"`
}

func (NationTurn) TableName() string { return "nation_turn" }
