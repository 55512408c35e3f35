package command

import (
	"fmt"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/errs"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

const generalCooldownKey = "next_execute"

// EntityStore 执行器水合与保存实体所需的最小接口。
// 查询未命中时返回 (nil, nil)，error 只用于基础设施故障。
type EntityStore interface {
	GeneralByID(worldID domain.WorldID, id domain.GeneralID) (*domain.General, error)
	CityByID(worldID domain.WorldID, id domain.CityID) (*domain.City, error)
	NationByID(worldID domain.WorldID, id domain.NationID) (*domain.Nation, error)
	GeneralsByNation(worldID domain.WorldID, nationID domain.NationID) ([]*domain.General, error)
	GeneralsByCity(worldID domain.WorldID, cityID domain.CityID) ([]*domain.General, error)
	SaveGeneral(g *domain.General) error
	SaveCity(c *domain.City) error
	SaveNation(n *domain.Nation) error
}

// Registry 动作码到命令工厂的映射。
type Registry interface {
	// CreateGeneral 未知动作码回退为 rest
	CreateGeneral(actionCode string, b *Base) Command
	CreateNation(actionCode string, b *Base) (Command, bool)
	HasGeneral(actionCode string) bool
	HasNation(actionCode string) bool
}

type Executor struct {
	store    EntityStore
	registry Registry
}

func NewExecutor(store EntityStore, registry Registry) *Executor {
	return &Executor{store: store, registry: registry}
}

// ExecuteGeneral 执行一条武将命令。业务拒绝表现为 Result.Success=false，
// error 只在基础设施故障时返回。
func (e *Executor) ExecuteGeneral(
	actionCode string,
	general *domain.General,
	env *Env,
	arg map[string]any,
	city *domain.City,
	nation *domain.Nation,
	m *MapContext,
	r *rng.Rand,
) (Result, error) {
	const op = "executor.ExecuteGeneral"

	b := &Base{General: general, Env: env, Arg: arg, City: city, Nation: nation, Map: m}
	cmd := e.registry.CreateGeneral(actionCode, b)
	if err := e.hydrateDestination(b); err != nil {
		return Result{}, errs.Wrap(op, errs.KindInfra, err, map[string]any{"action": actionCode})
	}

	// 冷却中直接拒绝
	if fail := checkCooldown(general.Meta, generalCooldownKey, actionCode, env); fail != nil {
		return *fail, nil
	}

	if reason := CheckConstraints(cmd); reason != "" {
		// 约束不满足时尝试一次替代命令（例如出兵不成改为移动）
		if alt := cmd.Alternative(); alt != "" && alt != actionCode {
			return e.ExecuteGeneral(alt, general, env, arg, city, nation, m, r)
		}
		return Fail(reason), nil
	}

	preReq := cmd.PreReqTurn()
	if preReq > 0 {
		stacked := general.LastTurn.AddTermStack(actionCode, arg)
		if stacked.Term < preReq {
			general.LastTurn = stacked
			return Result{
				Success: true,
				Logs:    []string{fmt.Sprintf("%s in progress (%d/%d)", cmd.ActionName(), stacked.Term, preReq)},
			}, nil
		}
	}

	result := cmd.Run(r)
	lt := domain.LastTurn{Command: actionCode, Arg: arg}
	if preReq > 0 {
		lt.Term = preReq
	}
	general.LastTurn = lt

	// 成败都要落账：计略失败同样消耗资源、累积经验
	ApplyEffects(result.Effects, general, city, nation, b.DestGeneral, b.DestCity, b.DestNation)

	if changes := CheckStatChange(general); len(changes) > 0 {
		result.Logs = append(result.Logs, StatChangeLogs(changes)...)
	}

	if err := e.saveModified(b); err != nil {
		return Result{}, errs.Wrap(op, errs.KindInfra, err, map[string]any{"action": actionCode, "generalId": int64(general.ID)})
	}

	if post := cmd.PostReqTurn(); post > 0 {
		if general.Meta == nil {
			general.Meta = map[string]any{}
		}
		applyCooldown(general.Meta, generalCooldownKey, actionCode, env, post)
	}
	return result, nil
}

// ExecuteNation 执行一条势力命令。势力命令在 Run 里直接修改实体，
// 冷却和进度存在 nation.Meta 按官职分桶的键下。
func (e *Executor) ExecuteNation(
	actionCode string,
	general *domain.General,
	env *Env,
	arg map[string]any,
	city *domain.City,
	nation *domain.Nation,
	m *MapContext,
	r *rng.Rand,
) (Result, error) {
	const op = "executor.ExecuteNation"

	b := &Base{General: general, Env: env, Arg: arg, City: city, Nation: nation, Map: m}
	cmd, ok := e.registry.CreateNation(actionCode, b)
	if !ok {
		return Fail("unknown nation command: " + actionCode), nil
	}
	if err := e.hydrateDestination(b); err != nil {
		return Result{}, errs.Wrap(op, errs.KindInfra, err, map[string]any{"action": actionCode})
	}

	cooldownKey := fmt.Sprintf("turn_next_%d", general.OfficerLevel)
	lastTurnKey := fmt.Sprintf("turn_last_%d", general.OfficerLevel)

	if nation != nil {
		if fail := checkCooldown(nation.Meta, cooldownKey, actionCode, env); fail != nil {
			return *fail, nil
		}
	}

	if reason := CheckConstraints(cmd); reason != "" {
		return Fail(reason), nil
	}

	preReq := cmd.PreReqTurn()
	if preReq > 0 && nation != nil {
		stacked := nationLastTurn(nation, lastTurnKey).AddTermStack(actionCode, arg)
		if stacked.Term < preReq {
			setNationLastTurn(nation, lastTurnKey, stacked)
			return Result{
				Success: true,
				Logs:    []string{fmt.Sprintf("%s in progress (%d/%d)", cmd.ActionName(), stacked.Term, preReq)},
			}, nil
		}
	}

	result := cmd.Run(r)
	if nation != nil {
		lt := domain.LastTurn{Command: actionCode, Arg: arg}
		if preReq > 0 {
			lt.Term = preReq
		}
		setNationLastTurn(nation, lastTurnKey, lt)
	}

	if result.Success {
		if err := e.saveModified(b); err != nil {
			return Result{}, errs.Wrap(op, errs.KindInfra, err, map[string]any{"action": actionCode, "nationId": nationIDOf(nation)})
		}
	}

	if post := cmd.PostReqTurn(); post > 0 && nation != nil {
		if nation.Meta == nil {
			nation.Meta = map[string]any{}
		}
		applyCooldown(nation.Meta, cooldownKey, actionCode, env, post)
	}
	return result, nil
}

// hydrateDestination 从参数水合 dest 系列实体，并补全相互推导关系：
// 目标武将→其所在城市，目标城市→其所属势力，目标势力→其君主。
func (e *Executor) hydrateDestination(b *Base) error {
	if b.Arg == nil {
		return nil
	}
	worldID := b.General.WorldID

	var destCity *domain.City
	if id, ok := extractInt64(b.Arg, "destCityId", "cityId", "targetCityId"); ok {
		c, err := e.store.CityByID(worldID, domain.CityID(id))
		if err != nil {
			return err
		}
		destCity = c
	}

	var destNation *domain.Nation
	if id, ok := extractInt64(b.Arg, "destNationId", "targetNationId", "nationId"); ok {
		n, err := e.store.NationByID(worldID, domain.NationID(id))
		if err != nil {
			return err
		}
		destNation = n
	}

	var destGeneral *domain.General
	if id, ok := extractInt64(b.Arg, "destGeneralId", "targetGeneralId", "generalId"); ok {
		g, err := e.store.GeneralByID(worldID, domain.GeneralID(id))
		if err != nil {
			return err
		}
		destGeneral = g
	}

	if destCity == nil && destGeneral != nil {
		c, err := e.store.CityByID(worldID, destGeneral.CityID)
		if err != nil {
			return err
		}
		destCity = c
	}
	if destNation == nil && destGeneral != nil && destGeneral.NationID != domain.NationNeutral {
		n, err := e.store.NationByID(worldID, destGeneral.NationID)
		if err != nil {
			return err
		}
		destNation = n
	}
	if destNation == nil && destCity != nil && destCity.NationID != domain.NationNeutral {
		n, err := e.store.NationByID(worldID, destCity.NationID)
		if err != nil {
			return err
		}
		destNation = n
	}
	if destGeneral == nil && destNation != nil {
		members, err := e.store.GeneralsByNation(worldID, destNation.ID)
		if err != nil {
			return err
		}
		for _, g := range members {
			if destGeneral == nil || g.OfficerLevel > destGeneral.OfficerLevel {
				destGeneral = g
			}
		}
	}

	if destCity != nil {
		others, err := e.store.GeneralsByCity(worldID, destCity.ID)
		if err != nil {
			return err
		}
		filtered := others[:0]
		for _, g := range others {
			if g.ID != b.General.ID {
				filtered = append(filtered, g)
			}
		}
		b.DestCityGenerals = filtered
	}

	b.DestCity = destCity
	b.DestNation = destNation
	b.DestGeneral = destGeneral
	return nil
}

func (e *Executor) saveModified(b *Base) error {
	if err := e.store.SaveGeneral(b.General); err != nil {
		return err
	}
	if b.City != nil {
		if err := e.store.SaveCity(b.City); err != nil {
			return err
		}
	}
	if b.Nation != nil {
		if err := e.store.SaveNation(b.Nation); err != nil {
			return err
		}
	}
	if b.DestGeneral != nil {
		if err := e.store.SaveGeneral(b.DestGeneral); err != nil {
			return err
		}
	}
	if b.DestCity != nil {
		if err := e.store.SaveCity(b.DestCity); err != nil {
			return err
		}
	}
	if b.DestNation != nil {
		if err := e.store.SaveNation(b.DestNation); err != nil {
			return err
		}
	}
	return nil
}

func checkCooldown(meta map[string]any, key, actionCode string, env *Env) *Result {
	blockedUntil, ok := parseIntMap(meta[key])[actionCode]
	if !ok {
		return nil
	}
	now := env.TurnIdx()
	if now < blockedUntil {
		r := Fail(fmt.Sprintf("command on cooldown (%d turns left)", blockedUntil-now))
		return &r
	}
	return nil
}

func applyCooldown(meta map[string]any, key, actionCode string, env *Env, postReq int) {
	m := parseIntMap(meta[key])
	m[actionCode] = env.TurnIdx() + postReq
	stored := make(map[string]any, len(m))
	for k, v := range m {
		stored[k] = v
	}
	meta[key] = stored
}

func nationLastTurn(n *domain.Nation, key string) domain.LastTurn {
	raw, ok := n.MetaValue(key)
	if !ok {
		return domain.LastTurn{}
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return domain.LastTurn{}
	}
	lt := domain.LastTurn{}
	if cmdName, ok := m["command"].(string); ok {
		lt.Command = cmdName
	}
	if arg, ok := m["arg"].(map[string]any); ok {
		lt.Arg = arg
	}
	if term, ok := m["term"]; ok {
		switch v := term.(type) {
		case int:
			lt.Term = v
		case int64:
			lt.Term = int(v)
		case float64:
			lt.Term = int(v)
		}
	}
	return lt
}

func setNationLastTurn(n *domain.Nation, key string, lt domain.LastTurn) {
	entry := map[string]any{"command": lt.Command, "term": lt.Term}
	if lt.Arg != nil {
		entry["arg"] = lt.Arg
	}
	n.SetMeta(key, entry)
}

func parseIntMap(raw any) map[string]int {
	out := map[string]int{}
	m, ok := raw.(map[string]any)
	if !ok {
		return out
	}
	for k, v := range m {
		switch n := v.(type) {
		case int:
			out[k] = n
		case int64:
			out[k] = int(n)
		case float64:
			out[k] = int(n)
		}
	}
	return out
}

func nationIDOf(n *domain.Nation) int64 {
	if n == nil {
		return 0
	}
	return int64(n.ID)
}
