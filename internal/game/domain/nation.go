package domain

// Nation 势力。Meta 里带按官职分桶的回合冷却与上次执行记录
// （turn_next_{level} / turn_last_{level}）。
type Nation struct {
	ID                NationID       `gorm:"column:id;primaryKey;autoIncrement;comment:势力ID" json:"id"`
	WorldID           WorldID        `gorm:"column:world_id;index;not null" json:"world_id"`
	Name              string         `gorm:"column:name;type:varchar(64);not null;comment:势力名" json:"name"`
	Color             string         `gorm:"column:color;type:varchar(16);comment:旗色" json:"color"`
	Level             int8           `gorm:"column:level;not null;default:0;comment:势力等级 0为灭亡" json:"level"`
	Capital           CityID         `gorm:"column:capital;not null;default:0;comment:首都" json:"capital"`
	Gold              int64          `gorm:"column:gold;not null;default:0" json:"gold"`
	Rice              int64          `gorm:"column:rice;not null;default:0" json:"rice"`
	GoldPolicy        int64          `gorm:"column:gold_policy;not null;default:0;comment:金库警戒线" json:"gold_policy"`
	RicePolicy        int64          `gorm:"column:rice_policy;not null;default:0;comment:粮库警戒线" json:"rice_policy"`
	Tech              float64        `gorm:"column:tech;not null;default:0;comment:技术力" json:"tech"`
	StrategicCmdLimit int            `gorm:"column:strategic_cmd_limit;not null;default:0;comment:战略命令余量" json:"strategic_cmd_limit"`
	Meta              map[string]any `gorm:"column:meta;serializer:json" json:"meta,omitempty"`
}

func (Nation) TableName() string { return "nation" }

func (n *Nation) IsAlive() bool {
	return n.Level > 0
}

func (n *Nation) MetaValue(key string) (any, bool) {
	if n.Meta == nil {
		return nil, false
	}
	v, ok := n.Meta[key]
	return v, ok
}

func (n *Nation) SetMeta(key string, value any) {
	if n.Meta == nil {
		n.Meta = map[string]any{}
	}
	n.Meta[key] = value
}

func (n *Nation) DeleteMeta(key string) {
	delete(n.Meta, key)
}
