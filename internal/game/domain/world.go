package domain

import "time"

// World 一个独立运行的游戏世界。Config 存世界级开关，
// 例如 isUnited、autorun_user、develCost。
type World struct {
	ID            WorldID        `gorm:"column:id;primaryKey;comment:世界ID" json:"id"`
	Name          string         `gorm:"column:name;type:varchar(100);not null;comment:世界名称" json:"name"`
	HiddenSeed    string         `gorm:"column:hidden_seed;type:varchar(128);not null;comment:隐藏种子" json:"-"`
	Year          int            `gorm:"column:year;not null;comment:游戏内年" json:"year"`
	Month         int            `gorm:"column:month;not null;comment:游戏内月 1-12" json:"month"`
	StartYear     int            `gorm:"column:start_year;not null;comment:开服年" json:"start_year"`
	TickSeconds   int            `gorm:"column:tick_seconds;not null;default:300;comment:回合间隔秒" json:"tick_seconds"`
	GatewayActive bool           `gorm:"column:gateway_active;not null;default:0;comment:是否对外开放" json:"gateway_active"`
	Realtime      bool           `gorm:"column:realtime;not null;default:0;comment:实时模式" json:"realtime"`
	Config        map[string]any `gorm:"column:config;serializer:json;comment:世界配置" json:"config"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;not null;comment:最近处理到的回合时刻" json:"updated_at"`
}

func (World) TableName() string { return "world" }

// RelYear 开服后经过的年数。
func (w *World) RelYear() int {
	return w.Year - w.StartYear
}

// CurrentYearMonth 年月合并成单调递增的序号，用于 autorun 限期比较。
func (w *World) CurrentYearMonth() int {
	return w.Year*100 + w.Month
}

// TurnIdx 以月为单位的回合序号，用于冷却和排队。
func (w *World) TurnIdx() int {
	return w.Year*12 + w.Month
}

// AdvanceMonth 推进一个月，12 月之后进位到下一年 1 月。
func (w *World) AdvanceMonth() {
	w.Month++
	if w.Month > 12 {
		w.Month = 1
		w.Year++
	}
}

// ConfigInt 读取 Config 里的数值项，JSON 反序列化后可能是 float64。
func (w *World) ConfigInt(key string, def int) int {
	if w.Config == nil {
		return def
	}
	switch v := w.Config[key].(type) {
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

func (w *World) SetConfig(key string, value any) {
	if w.Config == nil {
		w.Config = map[string]any{}
	}
	w.Config[key] = value
}
