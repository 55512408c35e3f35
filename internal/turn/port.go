package turn

import (
	"context"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

// WorldRepo 世界的加载与保存。保存失败是致命错误，会中断整个回合。
type WorldRepo interface {
	ActiveWorlds(ctx context.Context) ([]*domain.World, error)
	WorldByID(ctx context.Context, id domain.WorldID) (*domain.World, error)
	SaveWorld(w *domain.World) error
}

// EntityStore 回合处理所需的实体读写，是命令执行器接口的超集。
type EntityStore interface {
	command.EntityStore

	// GeneralsByWorld 回合顺序：turnTime 升序
	GeneralsByWorld(worldID domain.WorldID) ([]*domain.General, error)
	NationsByWorld(worldID domain.WorldID) ([]*domain.Nation, error)
	CitiesByWorld(worldID domain.WorldID) ([]*domain.City, error)
	DiplomaciesByWorld(worldID domain.WorldID) ([]*domain.Diplomacy, error)
	SaveDiplomacy(d *domain.Diplomacy) error
}

// GeneralTurnRepo 武将命令队列。Consume 只在执行成功后调用，
// AI 接管的武将用 Discard 清空积压。
type GeneralTurnRepo interface {
	NextGeneralTurn(worldID domain.WorldID, generalID domain.GeneralID) (*domain.GeneralTurn, error)
	ConsumeGeneralTurn(id int64) error
	DiscardGeneralTurns(worldID domain.WorldID, generalID domain.GeneralID) error
}

// NationTurnRepo 势力命令队列，按官职分槽。
type NationTurnRepo interface {
	NextNationTurn(worldID domain.WorldID, nationID domain.NationID, officerLevel int8) (*domain.NationTurn, error)
	ConsumeNationTurn(id int64) error
}

// EventRepo 世界事件，Priority 降序、ID 升序。
type EventRepo interface {
	EventsByPhase(worldID domain.WorldID, phase string) ([]*domain.TurnEvent, error)
}

// Collaborator 月度结算协作方。单方失败只记日志，不阻断回合。
type Collaborator interface {
	Name() string
	Process(ctx context.Context, world *domain.World) error
}

// BattleResolver 出兵命令触发的战斗入口。
type BattleResolver interface {
	ExecuteBattle(ctx context.Context, attacker *domain.General, targetCity *domain.City, world *domain.World) (BattleOutcome, error)
}

// BattleOutcome 回合服务只关心胜负与占领。
type BattleOutcome interface {
	Occupied() bool
}

// GeneralAI NPC 武将决策。选定动作后由回合服务立即执行。
type GeneralAI interface {
	DecideGeneral(world *domain.World, general *domain.General, r *rng.Rand) (string, map[string]any)
}

// NationAI NPC 君主的势力槽决策。
type NationAI interface {
	DecideNation(world *domain.World, nation *domain.Nation, ruler *domain.General, r *rng.Rand) (string, map[string]any)
}

// SnapshotStore 月度快照落库（MongoDB）。
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
}
