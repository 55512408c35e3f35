package command

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

// Env 命令执行时的世界上下文，回合内只读。
type Env struct {
	WorldID   domain.WorldID
	Year      int
	Month     int
	StartYear int
	Realtime  bool
	DevelCost int64 // 内政命令的基础金费
	GameStor  map[string]any
}

// TurnIdx 冷却用的回合序号。
func (e *Env) TurnIdx() int {
	return e.Year*12 + e.Month
}

func (e *Env) RelYear() int {
	return e.Year - e.StartYear
}

// FormatDate 日志里的游戏内日期。
func (e *Env) FormatDate() string {
	return fmt.Sprintf("%d-%02d", e.Year, e.Month)
}

type Cost struct {
	Gold int64
	Rice int64
}

// Result 命令执行结果。Effects 是待应用的增量，
// 武将命令不直接改实体，由 Applicator 统一落账。
type Result struct {
	Success bool
	Logs    []string
	Effects *Effects
}

func Fail(reason string) Result {
	return Result{Success: false, Logs: []string{reason}}
}

// Base 所有命令共有的上下文。执行器负责水合 dest 系列字段。
type Base struct {
	General *domain.General
	Env     *Env
	Arg     map[string]any

	City   *domain.City
	Nation *domain.Nation

	DestGeneral      *domain.General
	DestCity         *domain.City
	DestNation       *domain.Nation
	DestCityGenerals []*domain.General

	Map *MapContext

	logs []string
}

// State 给执行器访问命令内嵌上下文用。
func (b *Base) State() *Base { return b }

func (b *Base) PushLog(msg string) {
	b.logs = append(b.logs, msg)
}

func (b *Base) Logs() []string { return b.logs }

// 默认值，具体命令按需覆盖。
func (b *Base) Cost() Cost            { return Cost{} }
func (b *Base) PreReqTurn() int       { return 0 }
func (b *Base) PostReqTurn() int      { return 0 }
func (b *Base) Duration() int         { return 300 }
func (b *Base) CommandPointCost() int { return 1 }
func (b *Base) Alternative() string   { return "" }

// NationTechCostFactor 势力技术力带来的成本系数。
func (b *Base) NationTechCostFactor() float64 {
	if b.Nation == nil {
		return 1.0
	}
	return 1.0 + b.Nation.Tech/1000.0
}

// ArgInt64 从参数里取数值，JSON 解码可能给 float64 或字符串。
func (b *Base) ArgInt64(keys ...string) (int64, bool) {
	return extractInt64(b.Arg, keys...)
}

type Command interface {
	ActionName() string
	State() *Base
	Constraints() []Constraint
	Cost() Cost
	PreReqTurn() int
	PostReqTurn() int
	Duration() int
	CommandPointCost() int
	Alternative() string
	Run(r *rng.Rand) Result
}

// CheckConstraints 按声明顺序短路检查，返回第一个不满足的原因。
func CheckConstraints(cmd Command) string {
	b := cmd.State()
	for _, c := range cmd.Constraints() {
		if reason := c.Test(b); reason != "" {
			return reason
		}
	}
	return ""
}

func extractInt64(arg map[string]any, keys ...string) (int64, bool) {
	for _, key := range keys {
		raw, ok := arg[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case int:
			return int64(v), true
		case int64:
			return v, true
		case float64:
			return int64(v), true
		case string:
			var n int64
			if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
