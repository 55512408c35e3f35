package domain

// 回合事件的执行时机。
const (
	EventPreMonth = "PRE_MONTH" // 推进月份之前
	EventMonth    = "MONTH"     // 推进月份之后
)

// TurnEvent 世界级脚本事件。同一时机内 Priority 降序、ID 升序执行。
type TurnEvent struct {
	ID       int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WorldID  WorldID        `gorm:"column:world_id;index;not null" json:"world_id"`
	Phase    string         `gorm:"column:phase;type:varchar(16);not null" json:"phase"`
	Priority int            `gorm:"column:priority;not null;default:0" json:"priority"`
	Action   string         `gorm:"column:action;type:varchar(64);not null;comment:事件处理器名" json:"action"`
	Arg      map[string]any `gorm:"column:arg;serializer:json" json:"arg,omitempty"`
}

func (TurnEvent) TableName() string { return "turn_event" }
