package turn

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/peppone-choi/opensamguk-sub002/internal/command"
	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/errs"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/logs"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const defaultDevelCost = 100

// Service 单个世界的回合推进。
// 实体按 turnTime 升序严格串行处理：后处理的实体要能看到
// 先处理实体造成的变化（例如同回合内的城池易主）。
type Service struct {
	worlds    WorldRepo
	store     EntityStore
	generalQ  GeneralTurnRepo
	nationQ   NationTurnRepo
	events    *EventDispatcher
	executor  *command.Executor
	battles   BattleResolver
	generalAI GeneralAI
	nationAI  NationAI
	snapshots SnapshotStore

	// 月度结算协作方，按序执行，各自独立兜底
	collaborators []Collaborator

	now func() time.Time
}

type ServiceConfig struct {
	Worlds        WorldRepo
	Store         EntityStore
	GeneralQueue  GeneralTurnRepo
	NationQueue   NationTurnRepo
	Events        *EventDispatcher
	Executor      *command.Executor
	Battles       BattleResolver
	GeneralAI     GeneralAI
	NationAI      NationAI
	Snapshots     SnapshotStore
	Collaborators []Collaborator
	Now           func() time.Time
}

func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		worlds:        cfg.Worlds,
		store:         cfg.Store,
		generalQ:      cfg.GeneralQueue,
		nationQ:       cfg.NationQueue,
		events:        cfg.Events,
		executor:      cfg.Executor,
		battles:       cfg.Battles,
		generalAI:     cfg.GeneralAI,
		nationAI:      cfg.NationAI,
		snapshots:     cfg.Snapshots,
		collaborators: cfg.Collaborators,
		now:           now,
	}
}

// ProcessWorld 补齐到当前时刻为止所有欠下的回合。
// 停机 N 个周期后恢复，会在这一次调用里连续推进 N 个月。
// 只有世界快照本身的保存失败会向上传播。
func (s *Service) ProcessWorld(ctx context.Context, world *domain.World) error {
	const op = "turn.ProcessWorld"

	tick := time.Duration(world.TickSeconds) * time.Second
	if tick <= 0 {
		return errs.New(op, errs.KindBusiness, fmt.Sprintf("invalid tick interval: %d", world.TickSeconds))
	}

	ticked := 0
	for s.now().Sub(world.UpdatedAt) >= tick {
		s.processTick(ctx, world)
		world.UpdatedAt = world.UpdatedAt.Add(tick)
		ticked++
	}

	if ticked == 0 {
		return nil
	}
	if err := s.worlds.SaveWorld(world); err != nil {
		return errs.Wrap(op, errs.KindInfra, err, map[string]any{"worldId": world.ID})
	}
	logs.Info("world advanced",
		zap.Int64("worldId", int64(world.ID)),
		zap.Int("ticks", ticked),
		zap.Int("year", world.Year),
		zap.Int("month", world.Month))
	return nil
}

func (s *Service) processTick(ctx context.Context, world *domain.World) {
	generals, err := s.store.GeneralsByWorld(world.ID)
	if err != nil {
		logs.Error("load generals failed", zap.Int64("worldId", int64(world.ID)), zap.Error(err))
		return
	}

	env := s.buildEnv(world)
	for _, g := range generals {
		s.processGeneral(ctx, world, env, g)
	}

	if s.events != nil {
		s.events.Dispatch(world, domain.EventPreMonth)
	}

	world.AdvanceMonth()

	s.writeSnapshot(ctx, world)

	for _, c := range s.collaborators {
		s.runCollaborator(ctx, world, c)
	}

	if s.events != nil {
		s.events.Dispatch(world, domain.EventMonth)
	}

	s.decayStrategicLimits(world)
}

// processGeneral 一个武将的完整回合。任何 panic 或基础设施错误
// 只使这一个武将的回合作废，不影响同回合的其他人。
func (s *Service) processGeneral(ctx context.Context, world *domain.World, env *command.Env, g *domain.General) {
	defer func() {
		if r := recover(); r != nil {
			logs.Error("general turn panicked",
				zap.Int64("worldId", int64(world.ID)),
				zap.Int64("generalId", int64(g.ID)),
				zap.Any("panic", r))
		}
	}()

	// 封禁中只走放逐倒计时
	if g.IsBlocked() {
		s.applyKillTurn(world, g, false)
		if err := s.store.SaveGeneral(g); err != nil {
			logs.Error("save blocked general failed", zap.Int64("generalId", int64(g.ID)), zap.Error(err))
		}
		return
	}

	if g.OfficerLevel >= domain.OfficerMinCmd && g.NationID != domain.NationNeutral {
		s.processNationSlot(world, env, g)
	}

	acted := s.processGeneralSlot(ctx, world, env, g)

	s.applyKillTurn(world, g, acted)
	if err := s.store.SaveGeneral(g); err != nil {
		logs.Error("save general failed", zap.Int64("generalId", int64(g.ID)), zap.Error(err))
	}
}

// processNationSlot 官职够格的武将在自己的回合里额外执行一条势力命令。
// 队列为空时 NPC 君主由势力 AI 兜底，nationRest 不值得真的跑一遍。
func (s *Service) processNationSlot(world *domain.World, env *command.Env, g *domain.General) {
	nation, err := s.store.NationByID(world.ID, g.NationID)
	if err != nil || nation == nil {
		if err != nil {
			logs.Error("load nation failed", zap.Int64("nationId", int64(g.NationID)), zap.Error(err))
		}
		return
	}

	action := ""
	var arg map[string]any
	var queuedID int64

	queued, err := s.nationQ.NextNationTurn(world.ID, nation.ID, g.OfficerLevel)
	if err != nil {
		logs.Error("load nation turn failed", zap.Int64("nationId", int64(nation.ID)), zap.Error(err))
		return
	}
	if queued != nil {
		action, arg, queuedID = queued.Action, queued.Arg, queued.ID
	} else if g.IsNPC() && g.OfficerLevel == domain.OfficerChief && s.nationAI != nil {
		r := rng.New(world.HiddenSeed, "nationAI", int64(nation.ID), world.Year, world.Month)
		action, arg = s.nationAI.DecideNation(world, nation, g, r)
	}

	if action == "" || action == "nationRest" {
		if queuedID != 0 {
			if err := s.nationQ.ConsumeNationTurn(queuedID); err != nil {
				logs.Error("consume nation turn failed", zap.Int64("turnId", queuedID), zap.Error(err))
			}
		}
		return
	}

	city, err := s.store.CityByID(world.ID, g.CityID)
	if err != nil {
		logs.Error("load city failed", zap.Int64("cityId", int64(g.CityID)), zap.Error(err))
		return
	}
	m, err := s.buildMapContext(world, g.NationID)
	if err != nil {
		logs.Error("build map context failed", zap.Int64("worldId", int64(world.ID)), zap.Error(err))
		return
	}

	r := rng.New(world.HiddenSeed, "nation", int64(g.ID), world.Year, world.Month, action)
	result, err := s.executor.ExecuteNation(action, g, env, arg, city, nation, m, r)
	if err != nil {
		logs.Error("nation command failed",
			zap.Int64("generalId", int64(g.ID)),
			zap.String("action", action),
			zap.Error(err))
		return
	}
	if queuedID != 0 {
		if err := s.nationQ.ConsumeNationTurn(queuedID); err != nil {
			logs.Error("consume nation turn failed", zap.Int64("turnId", queuedID), zap.Error(err))
		}
	}
	logCommandResult(g, action, result)
}

// processGeneralSlot 武将自己的命令。返回是否执行了玩家预约的非 rest 动作。
func (s *Service) processGeneralSlot(ctx context.Context, world *domain.World, env *command.Env, g *domain.General) bool {
	action := domain.ActionRest
	var arg map[string]any
	var queuedID int64

	r := rng.New(world.HiddenSeed, "general", int64(g.ID), world.Year, world.Month)

	if g.IsNPC() {
		// AI 接管的武将无视排队，积压顺手清掉
		if err := s.generalQ.DiscardGeneralTurns(world.ID, g.ID); err != nil {
			logs.Error("discard general turns failed", zap.Int64("generalId", int64(g.ID)), zap.Error(err))
		}
		if s.generalAI != nil {
			action, arg = s.generalAI.DecideGeneral(world, g, r)
		}
	} else {
		queued, err := s.generalQ.NextGeneralTurn(world.ID, g.ID)
		if err != nil {
			logs.Error("load general turn failed", zap.Int64("generalId", int64(g.ID)), zap.Error(err))
			return false
		}
		if queued != nil {
			action, arg, queuedID = queued.Action, queued.Arg, queued.ID
		} else if autorunEnabled(world) && s.generalAI != nil {
			// 托管世界里掉线玩家交给 AI 代打
			action, arg = s.generalAI.DecideGeneral(world, g, r)
		}
	}

	city, err := s.store.CityByID(world.ID, g.CityID)
	if err != nil {
		logs.Error("load city failed", zap.Int64("cityId", int64(g.CityID)), zap.Error(err))
		return false
	}
	var nation *domain.Nation
	if g.NationID != domain.NationNeutral {
		nation, err = s.store.NationByID(world.ID, g.NationID)
		if err != nil {
			logs.Error("load nation failed", zap.Int64("nationId", int64(g.NationID)), zap.Error(err))
			return false
		}
	}
	m, err := s.buildMapContext(world, g.NationID)
	if err != nil {
		logs.Error("build map context failed", zap.Int64("worldId", int64(world.ID)), zap.Error(err))
		return false
	}

	cr := rng.New(world.HiddenSeed, "general", int64(g.ID), world.Year, world.Month, action)
	result, err := s.executor.ExecuteGeneral(action, g, env, arg, city, nation, m, cr)
	if err != nil {
		logs.Error("general command failed",
			zap.Int64("generalId", int64(g.ID)),
			zap.String("action", action),
			zap.Error(err))
		return false
	}

	// 队列条目严格消费一次：执行完成后才出队
	if queuedID != 0 {
		if err := s.generalQ.ConsumeGeneralTurn(queuedID); err != nil {
			logs.Error("consume general turn failed", zap.Int64("turnId", queuedID), zap.Error(err))
		}
	}
	logCommandResult(g, action, result)

	if result.Effects != nil && result.Effects.BattleTriggered && s.battles != nil {
		s.resolveBattle(ctx, world, g, result.Effects.TargetCityID)
	}

	g.TurnTime = s.now()
	return queuedID != 0 && action != domain.ActionRest
}

func (s *Service) resolveBattle(ctx context.Context, world *domain.World, attacker *domain.General, targetCityID domain.CityID) {
	target, err := s.store.CityByID(world.ID, targetCityID)
	if err != nil || target == nil {
		logs.Error("load battle target failed", zap.Int64("cityId", int64(targetCityID)), zap.Error(err))
		return
	}
	outcome, err := s.battles.ExecuteBattle(ctx, attacker, target, world)
	if err != nil {
		logs.Error("battle failed",
			zap.Int64("attackerId", int64(attacker.ID)),
			zap.Int64("cityId", int64(targetCityID)),
			zap.Error(err))
		return
	}
	if outcome.Occupied() {
		logs.Info("city occupied",
			zap.Int64("worldId", int64(world.ID)),
			zap.Int64("cityId", int64(targetCityID)),
			zap.Int64("nationId", int64(attacker.NationID)))
	}
}

// applyKillTurn 放逐倒计时。玩家用掉真实命令即视为活跃；
// 归零时强制退场并脱离势力。
func (s *Service) applyKillTurn(world *domain.World, g *domain.General, acted bool) {
	if g.KillTurn == nil {
		return
	}
	if acted && g.NpcState <= domain.NpcFrozen {
		g.KillTurn = nil
		return
	}
	next := *g.KillTurn - 1
	if next > 0 {
		g.KillTurn = &next
		return
	}
	g.KillTurn = nil
	g.NpcState = domain.NpcRetired
	g.Detach()
	logs.Info("general retired",
		zap.Int64("worldId", int64(world.ID)),
		zap.Int64("generalId", int64(g.ID)),
		zap.String("name", g.Name))
}

func (s *Service) writeSnapshot(ctx context.Context, world *domain.World) {
	if s.snapshots == nil {
		return
	}
	generals, err := s.store.GeneralsByWorld(world.ID)
	if err != nil {
		logs.Error("snapshot load generals failed", zap.Error(err))
		return
	}
	nations, err := s.store.NationsByWorld(world.ID)
	if err != nil {
		logs.Error("snapshot load nations failed", zap.Error(err))
		return
	}
	cities, err := s.store.CitiesByWorld(world.ID)
	if err != nil {
		logs.Error("snapshot load cities failed", zap.Error(err))
		return
	}
	snap := buildSnapshot(world, generals, nations, cities)
	if err := s.snapshots.SaveSnapshot(ctx, snap); err != nil {
		logs.Error("save snapshot failed", zap.Int64("worldId", int64(world.ID)), zap.Error(err))
	}
}

func (s *Service) runCollaborator(ctx context.Context, world *domain.World, c Collaborator) {
	defer func() {
		if r := recover(); r != nil {
			logs.Error("collaborator panicked",
				zap.String("collaborator", c.Name()),
				zap.Int64("worldId", int64(world.ID)),
				zap.Any("panic", r))
		}
	}()
	if err := c.Process(ctx, world); err != nil {
		logs.Error("collaborator failed",
			zap.String("collaborator", c.Name()),
			zap.Int64("worldId", int64(world.ID)),
			zap.Error(err))
	}
}

// decayStrategicLimits 战略命令余量每月回落一点。
func (s *Service) decayStrategicLimits(world *domain.World) {
	nations, err := s.store.NationsByWorld(world.ID)
	if err != nil {
		logs.Error("load nations failed", zap.Int64("worldId", int64(world.ID)), zap.Error(err))
		return
	}
	for _, n := range nations {
		if n.StrategicCmdLimit <= 0 {
			continue
		}
		n.StrategicCmdLimit--
		if err := s.store.SaveNation(n); err != nil {
			logs.Error("save nation failed", zap.Int64("nationId", int64(n.ID)), zap.Error(err))
		}
	}
}

func (s *Service) buildEnv(world *domain.World) *command.Env {
	develCost := int64(defaultDevelCost)
	if world.Config != nil {
		if v, ok := configInt64(world.Config, "develCost"); ok {
			develCost = v
		}
	}
	return &command.Env{
		WorldID:   world.ID,
		Year:      world.Year,
		Month:     world.Month,
		StartYear: world.StartYear,
		Realtime:  world.Realtime,
		DevelCost: develCost,
		GameStor:  world.Config,
	}
}

// buildMapContext 为某个势力视角构建约束检查用的世界快照。
func (s *Service) buildMapContext(world *domain.World, nationID domain.NationID) (*command.MapContext, error) {
	cities, err := s.store.CitiesByWorld(world.ID)
	if err != nil {
		return nil, err
	}
	m := &command.MapContext{
		CityNationByID: make(map[domain.CityID]domain.NationID, len(cities)),
		CitySupplyByID: make(map[domain.CityID]bool, len(cities)),
		Adjacency:      make(map[domain.CityID][]domain.CityID, len(cities)),
		AtWarNationIDs: map[domain.NationID]bool{},
	}
	for _, c := range cities {
		m.CityNationByID[c.ID] = c.NationID
		m.CitySupplyByID[c.ID] = c.IsSupplied()
		m.Adjacency[c.ID] = c.AdjacentIDs()
	}

	if nationID != domain.NationNeutral {
		dips, err := s.store.DiplomaciesByWorld(world.ID)
		if err != nil {
			return nil, err
		}
		for _, d := range dips {
			if d.NationID == nationID && d.IsWar() {
				m.AtWarNationIDs[d.TargetID] = true
			}
		}
	}
	return m, nil
}

func autorunEnabled(world *domain.World) bool {
	if world.Config == nil {
		return false
	}
	switch v := world.Config["autorun_user"].(type) {
	case bool:
		return v
	case float64:
		return v > 0
	case int:
		return v > 0
	}
	return false
}

func configInt64(cfg map[string]any, key string) (int64, bool) {
	switch v := cfg[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}

func logCommandResult(g *domain.General, action string, result command.Result) {
	if result.Success {
		return
	}
	reason := ""
	if len(result.Logs) > 0 {
		reason = result.Logs[0]
	}
	logs.Debug("command rejected",
		zap.Int64("generalId", int64(g.ID)),
		zap.String("action", action),
		zap.String("reason", reason))
}
