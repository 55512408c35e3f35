package domain

// 外交状态
const (
	DipWar          int8 = 0 // 交战
	DipCeasefire    int8 = 1 // 停战（带期限）
	DipNoAggression int8 = 2 // 互不侵犯（带期限）
	DipNeutral      int8 = 7
)

// Diplomacy 两势力间的单向外交记录，成对写入。
// Term 为剩余月数，到期由外交结算归为中立。
type Diplomacy struct {
	ID       int64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WorldID  WorldID  `gorm:"column:world_id;index;not null" json:"world_id"`
	NationID NationID `gorm:"column:nation_id;index;not null" json:"nation_id"`
	TargetID NationID `gorm:"column:target_id;not null" json:"target_id"`
	State    int8     `gorm:"column:state;not null;default:7" json:"state"`
	Term     int      `gorm:"column:term;not null;default:0;comment:剩余月数" json:"term"`
}

func (Diplomacy) TableName() string { return "diplomacy" }

func (d *Diplomacy) IsWar() bool {
	return d.State == DipWar
}
