package actors

import (
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
)

// TickWorld 请求某个世界推进一轮。由调度器经 ManagerActor 转发，
// 同一世界的回合在各自邮箱里串行。
type TickWorld struct {
	World *domain.World
}

// TickResult 单个世界的推进结果。
type TickResult struct {
	WorldID domain.WorldID
	Err     error
}
