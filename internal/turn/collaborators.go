package turn

import (
	"context"

	"go.uber.org/zap"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/logs"
)

// DiplomacyCollaborator 外交期限衰减。停战与互不侵犯到期归中立，
// 交战状态不会自然到期。
type DiplomacyCollaborator struct {
	store EntityStore
}

func NewDiplomacyCollaborator(store EntityStore) *DiplomacyCollaborator {
	return &DiplomacyCollaborator{store: store}
}

func (c *DiplomacyCollaborator) Name() string { return "diplomacy" }

func (c *DiplomacyCollaborator) Process(_ context.Context, world *domain.World) error {
	dips, err := c.store.DiplomaciesByWorld(world.ID)
	if err != nil {
		return err
	}
	for _, d := range dips {
		if d.State == domain.DipWar || d.State == domain.DipNeutral {
			continue
		}
		d.Term--
		if d.Term <= 0 {
			d.Term = 0
			d.State = domain.DipNeutral
			logs.Info("diplomacy expired",
				zap.Int64("nationId", int64(d.NationID)),
				zap.Int64("targetId", int64(d.TargetID)))
		}
		if err := c.store.SaveDiplomacy(d); err != nil {
			return err
		}
	}
	return nil
}

// MaintenanceCollaborator 月度保养：伤势自然恢复，退场武将收尾。
type MaintenanceCollaborator struct {
	store EntityStore
}

func NewMaintenanceCollaborator(store EntityStore) *MaintenanceCollaborator {
	return &MaintenanceCollaborator{store: store}
}

func (c *MaintenanceCollaborator) Name() string { return "maintenance" }

func (c *MaintenanceCollaborator) Process(_ context.Context, world *domain.World) error {
	generals, err := c.store.GeneralsByWorld(world.ID)
	if err != nil {
		return err
	}
	for _, g := range generals {
		if g.Injury <= 0 {
			continue
		}
		g.Injury -= 10
		if g.Injury < 0 {
			g.Injury = 0
		}
		if err := c.store.SaveGeneral(g); err != nil {
			return err
		}
	}
	return nil
}

// EconomyCollaborator 经济结算的占位实现，只保证管线接通。
// 完整的税收与俸禄公式在别的服务里。
type EconomyCollaborator struct{}

func (EconomyCollaborator) Name() string { return "economy" }

func (EconomyCollaborator) Process(context.Context, *domain.World) error { return nil }

// NpcSpawnCollaborator 在野 NPC 补充的占位实现。
type NpcSpawnCollaborator struct{}

func (NpcSpawnCollaborator) Name() string { return "npcSpawn" }

func (NpcSpawnCollaborator) Process(context.Context, *domain.World) error { return nil }

// UnificationCollaborator 天下一统判定：所有有主城市归于一家时
// 在世界配置里落下 isUnited 标记。
type UnificationCollaborator struct {
	store EntityStore
}

func NewUnificationCollaborator(store EntityStore) *UnificationCollaborator {
	return &UnificationCollaborator{store: store}
}

func (c *UnificationCollaborator) Name() string { return "unification" }

func (c *UnificationCollaborator) Process(_ context.Context, world *domain.World) error {
	if world.Config != nil {
		if united, ok := world.Config["isUnited"].(bool); ok && united {
			return nil
		}
	}

	cities, err := c.store.CitiesByWorld(world.ID)
	if err != nil {
		return err
	}
	owner := domain.NationNeutral
	for _, city := range cities {
		if city.NationID == domain.NationNeutral {
			continue
		}
		if owner == domain.NationNeutral {
			owner = city.NationID
			continue
		}
		if city.NationID != owner {
			return nil
		}
	}
	if owner == domain.NationNeutral {
		return nil
	}

	if world.Config == nil {
		world.Config = map[string]any{}
	}
	world.Config["isUnited"] = true
	world.Config["unitedNationId"] = int64(owner)
	logs.Info("world unified",
		zap.Int64("worldId", int64(world.ID)),
		zap.Int64("nationId", int64(owner)))
	return nil
}
