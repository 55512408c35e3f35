package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/errs"
)

// Store 游戏实体的 MySQL 读写。查不到返回 (nil, nil)，
// 技术故障包成 KindInfra 往上抛。
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithTx(tx *gorm.DB) *Store {
	return &Store{db: tx}
}

const OpGeneralByID = "repo.game.GeneralByID"

func (s *Store) GeneralByID(worldID domain.WorldID, id domain.GeneralID) (*domain.General, error) {
	var g domain.General
	err := s.db.Where("world_id = ? AND id = ?", worldID, id).First(&g).Error
	switch {
	case err == nil:
		return &g, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, errs.Wrap(OpGeneralByID, errs.KindInfra, err, map[string]any{"worldId": worldID, "generalId": id})
	}
}

const OpCityByID = "repo.game.CityByID"

func (s *Store) CityByID(worldID domain.WorldID, id domain.CityID) (*domain.City, error) {
	var c domain.City
	err := s.db.Where("world_id = ? AND id = ?", worldID, id).First(&c).Error
	switch {
	case err == nil:
		return &c, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, errs.Wrap(OpCityByID, errs.KindInfra, err, map[string]any{"worldId": worldID, "cityId": id})
	}
}

const OpNationByID = "repo.game.NationByID"

func (s *Store) NationByID(worldID domain.WorldID, id domain.NationID) (*domain.Nation, error) {
	var n domain.Nation
	err := s.db.Where("world_id = ? AND id = ?", worldID, id).First(&n).Error
	switch {
	case err == nil:
		return &n, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, errs.Wrap(OpNationByID, errs.KindInfra, err, map[string]any{"worldId": worldID, "nationId": id})
	}
}

const OpGeneralsByNation = "repo.game.GeneralsByNation"

func (s *Store) GeneralsByNation(worldID domain.WorldID, nationID domain.NationID) ([]*domain.General, error) {
	var gs []*domain.General
	err := s.db.Where("world_id = ? AND nation_id = ?", worldID, nationID).Find(&gs).Error
	if err != nil {
		return nil, errs.Wrap(OpGeneralsByNation, errs.KindInfra, err, map[string]any{"worldId": worldID, "nationId": nationID})
	}
	return gs, nil
}

const OpGeneralsByCity = "repo.game.GeneralsByCity"

func (s *Store) GeneralsByCity(worldID domain.WorldID, cityID domain.CityID) ([]*domain.General, error) {
	var gs []*domain.General
	err := s.db.Where("world_id = ? AND city_id = ?", worldID, cityID).Find(&gs).Error
	if err != nil {
		return nil, errs.Wrap(OpGeneralsByCity, errs.KindInfra, err, map[string]any{"worldId": worldID, "cityId": cityID})
	}
	return gs, nil
}

const OpGeneralsByWorld = "repo.game.GeneralsByWorld"

// GeneralsByWorld 按 turn_time 升序，回合处理顺序由此决定。
func (s *Store) GeneralsByWorld(worldID domain.WorldID) ([]*domain.General, error) {
	var gs []*domain.General
	err := s.db.Where("world_id = ?", worldID).Order("turn_time ASC, id ASC").Find(&gs).Error
	if err != nil {
		return nil, errs.Wrap(OpGeneralsByWorld, errs.KindInfra, err, map[string]any{"worldId": worldID})
	}
	return gs, nil
}

const OpNationsByWorld = "repo.game.NationsByWorld"

func (s *Store) NationsByWorld(worldID domain.WorldID) ([]*domain.Nation, error) {
	var ns []*domain.Nation
	err := s.db.Where("world_id = ?", worldID).Find(&ns).Error
	if err != nil {
		return nil, errs.Wrap(OpNationsByWorld, errs.KindInfra, err, map[string]any{"worldId": worldID})
	}
	return ns, nil
}

const OpCitiesByWorld = "repo.game.CitiesByWorld"

func (s *Store) CitiesByWorld(worldID domain.WorldID) ([]*domain.City, error) {
	var cs []*domain.City
	err := s.db.Where("world_id = ?", worldID).Find(&cs).Error
	if err != nil {
		return nil, errs.Wrap(OpCitiesByWorld, errs.KindInfra, err, map[string]any{"worldId": worldID})
	}
	return cs, nil
}

const OpCitiesByNation = "repo.game.CitiesByNation"

func (s *Store) CitiesByNation(worldID domain.WorldID, nationID domain.NationID) ([]*domain.City, error) {
	var cs []*domain.City
	err := s.db.Where("world_id = ? AND nation_id = ?", worldID, nationID).Find(&cs).Error
	if err != nil {
		return nil, errs.Wrap(OpCitiesByNation, errs.KindInfra, err, map[string]any{"worldId": worldID, "nationId": nationID})
	}
	return cs, nil
}

const OpDiplomaciesByWorld = "repo.game.DiplomaciesByWorld"

func (s *Store) DiplomaciesByWorld(worldID domain.WorldID) ([]*domain.Diplomacy, error) {
	var ds []*domain.Diplomacy
	err := s.db.Where("world_id = ?", worldID).Find(&ds).Error
	if err != nil {
		return nil, errs.Wrap(OpDiplomaciesByWorld, errs.KindInfra, err, map[string]any{"worldId": worldID})
	}
	return ds, nil
}

const OpSaveGeneral = "repo.game.SaveGeneral"

func (s *Store) SaveGeneral(g *domain.General) error {
	if err := s.db.Save(g).Error; err != nil {
		return errs.Wrap(OpSaveGeneral, errs.KindInfra, err, map[string]any{"generalId": g.ID})
	}
	return nil
}

const OpSaveCity = "repo.game.SaveCity"

func (s *Store) SaveCity(c *domain.City) error {
	if err := s.db.Save(c).Error; err != nil {
		return errs.Wrap(OpSaveCity, errs.KindInfra, err, map[string]any{"cityId": c.ID})
	}
	return nil
}

const OpSaveNation = "repo.game.SaveNation"

func (s *Store) SaveNation(n *domain.Nation) error {
	if err := s.db.Save(n).Error; err != nil {
		return errs.Wrap(OpSaveNation, errs.KindInfra, err, map[string]any{"nationId": n.ID})
	}
	return nil
}

const OpSaveDiplomacy = "repo.game.SaveDiplomacy"

func (s *Store) SaveDiplomacy(d *domain.Diplomacy) error {
	if err := s.db.Save(d).Error; err != nil {
		return errs.Wrap(OpSaveDiplomacy, errs.KindInfra, err, map[string]any{"diplomacyId": d.ID})
	}
	return nil
}

// WorldStore 世界表的读写。
type WorldStore struct {
	db *gorm.DB
}

func NewWorldStore(db *gorm.DB) *WorldStore {
	return &WorldStore{db: db}
}

const OpActiveWorlds = "repo.world.ActiveWorlds"

func (s *WorldStore) ActiveWorlds(ctx context.Context) ([]*domain.World, error) {
	var ws []*domain.World
	err := s.db.WithContext(ctx).Where("gateway_active = ?", true).Find(&ws).Error
	if err != nil {
		return nil, errs.Wrap(OpActiveWorlds, errs.KindInfra, err, nil)
	}
	return ws, nil
}

const OpWorldByID = "repo.world.WorldByID"

func (s *WorldStore) WorldByID(ctx context.Context, id domain.WorldID) (*domain.World, error) {
	var w domain.World
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&w).Error
	switch {
	case err == nil:
		return &w, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, errs.Wrap(OpWorldByID, errs.KindInfra, err, map[string]any{"worldId": id})
	}
}

const OpSaveWorld = "repo.world.SaveWorld"

func (s *WorldStore) SaveWorld(w *domain.World) error {
	if err := s.db.Save(w).Error; err != nil {
		return errs.Wrap(OpSaveWorld, errs.KindInfra, err, map[string]any{"worldId": w.ID})
	}
	return nil
}

// TurnQueueStore 武将与势力的命令队列。
type TurnQueueStore struct {
	db *gorm.DB
}

func NewTurnQueueStore(db *gorm.DB) *TurnQueueStore {
	return &TurnQueueStore{db: db}
}

const OpNextGeneralTurn = "repo.turn.NextGeneralTurn"

func (s *TurnQueueStore) NextGeneralTurn(worldID domain.WorldID, generalID domain.GeneralID) (*domain.GeneralTurn, error) {
	var t domain.GeneralTurn
	err := s.db.Where("world_id = ? AND general_id = ?", worldID, generalID).
		Order("turn_idx ASC, id ASC").First(&t).Error
	switch {
	case err == nil:
		return &t, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, errs.Wrap(OpNextGeneralTurn, errs.KindInfra, err, map[string]any{"worldId": worldID, "generalId": generalID})
	}
}

const OpConsumeGeneralTurn = "repo.turn.ConsumeGeneralTurn"

func (s *TurnQueueStore) ConsumeGeneralTurn(id int64) error {
	if err := s.db.Delete(&domain.GeneralTurn{}, id).Error; err != nil {
		return errs.Wrap(OpConsumeGeneralTurn, errs.KindInfra, err, map[string]any{"turnId": id})
	}
	return nil
}

const OpDiscardGeneralTurns = "repo.turn.DiscardGeneralTurns"

func (s *TurnQueueStore) DiscardGeneralTurns(worldID domain.WorldID, generalID domain.GeneralID) error {
	err := s.db.Where("world_id = ? AND general_id = ?", worldID, generalID).
		Delete(&domain.GeneralTurn{}).Error
	if err != nil {
		return errs.Wrap(OpDiscardGeneralTurns, errs.KindInfra, err, map[string]any{"worldId": worldID, "generalId": generalID})
	}
	return nil
}

const OpNextNationTurn = "repo.turn.NextNationTurn"

func (s *TurnQueueStore) NextNationTurn(worldID domain.WorldID, nationID domain.NationID, officerLevel int8) (*domain.NationTurn, error) {
	var t domain.NationTurn
	err := s.db.Where("world_id = ? AND nation_id = ? AND officer_level = ?", worldID, nationID, officerLevel).
		Order("turn_idx ASC, id ASC").First(&t).Error
	switch {
	case err == nil:
		return &t, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, errs.Wrap(OpNextNationTurn, errs.KindInfra, err, map[string]any{"worldId": worldID, "nationId": nationID})
	}
}

const OpConsumeNationTurn = "repo.turn.ConsumeNationTurn"

func (s *TurnQueueStore) ConsumeNationTurn(id int64) error {
	if err := s.db.Delete(&domain.NationTurn{}, id).Error; err != nil {
		return errs.Wrap(OpConsumeNationTurn, errs.KindInfra, err, map[string]any{"turnId": id})
	}
	return nil
}

// EventStore 世界事件表。
type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

const OpEventsByPhase = "repo.event.EventsByPhase"

func (s *EventStore) EventsByPhase(worldID domain.WorldID, phase string) ([]*domain.TurnEvent, error) {
	var es []*domain.TurnEvent
	err := s.db.Where("world_id = ? AND phase = ?", worldID, phase).
		Order("priority DESC, id ASC").Find(&es).Error
	if err != nil {
		return nil, errs.Wrap(OpEventsByPhase, errs.KindInfra, err, map[string]any{"worldId": worldID, "phase": phase})
	}
	return es, nil
}
