package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/turn"
	"github.com/peppone-choi/opensamguk-sub002/internal/war"
)

// Store 纯内存实现，测试和单机模式用。锁粒度粗，够用就行。
type Store struct {
	mu          sync.Mutex
	generals    map[domain.GeneralID]*domain.General
	cities      map[domain.CityID]*domain.City
	nations     map[domain.NationID]*domain.Nation
	diplomacies map[int64]*domain.Diplomacy

	generalTurns []*domain.GeneralTurn
	nationTurns  []*domain.NationTurn
	events       []*domain.TurnEvent
	nextTurnID   int64

	worlds map[domain.WorldID]*domain.World

	Snapshots []*turn.Snapshot
	Reports   []*war.BattleReport
}

var (
	_ turn.EntityStore     = (*Store)(nil)
	_ war.Store            = (*Store)(nil)
	_ turn.GeneralTurnRepo = (*Store)(nil)
	_ turn.NationTurnRepo  = (*Store)(nil)
	_ turn.EventRepo       = (*Store)(nil)
	_ turn.WorldRepo       = (*Store)(nil)
	_ turn.SnapshotStore   = (*Store)(nil)
	_ war.ReportStore      = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		generals:    make(map[domain.GeneralID]*domain.General),
		cities:      make(map[domain.CityID]*domain.City),
		nations:     make(map[domain.NationID]*domain.Nation),
		diplomacies: make(map[int64]*domain.Diplomacy),
		worlds:      make(map[domain.WorldID]*domain.World),
		nextTurnID:  1,
	}
}

func (s *Store) AddGeneral(g *domain.General)   { s.generals[g.ID] = g }
func (s *Store) AddCity(c *domain.City)         { s.cities[c.ID] = c }
func (s *Store) AddNation(n *domain.Nation)     { s.nations[n.ID] = n }
func (s *Store) AddWorld(w *domain.World)       { s.worlds[w.ID] = w }
func (s *Store) AddDiplomacy(d *domain.Diplomacy) {
	if d.ID == 0 {
		d.ID = int64(len(s.diplomacies) + 1)
	}
	s.diplomacies[d.ID] = d
}

func (s *Store) AddEvent(e *domain.TurnEvent) {
	if e.ID == 0 {
		e.ID = int64(len(s.events) + 1)
	}
	s.events = append(s.events, e)
}

// EnqueueGeneralTurn 追加到该武将队列尾部。
func (s *Store) EnqueueGeneralTurn(worldID domain.WorldID, generalID domain.GeneralID, action string, arg map[string]any) *domain.GeneralTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &domain.GeneralTurn{
		ID:        s.nextTurnID,
		WorldID:   worldID,
		GeneralID: generalID,
		TurnIdx:   len(s.generalTurns),
		Action:    action,
		Arg:       arg,
	}
	s.nextTurnID++
	s.generalTurns = append(s.generalTurns, t)
	return t
}

func (s *Store) EnqueueNationTurn(worldID domain.WorldID, nationID domain.NationID, officerLevel int8, action string, arg map[string]any) *domain.NationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &domain.NationTurn{
		ID:           s.nextTurnID,
		WorldID:      worldID,
		NationID:     nationID,
		OfficerLevel: officerLevel,
		TurnIdx:      len(s.nationTurns),
		Action:       action,
		Arg:          arg,
	}
	s.nextTurnID++
	s.nationTurns = append(s.nationTurns, t)
	return t
}

func (s *Store) GeneralByID(_ domain.WorldID, id domain.GeneralID) (*domain.General, error) {
	return s.generals[id], nil
}

func (s *Store) CityByID(_ domain.WorldID, id domain.CityID) (*domain.City, error) {
	return s.cities[id], nil
}

func (s *Store) NationByID(_ domain.WorldID, id domain.NationID) (*domain.Nation, error) {
	return s.nations[id], nil
}

func (s *Store) GeneralsByNation(_ domain.WorldID, nationID domain.NationID) ([]*domain.General, error) {
	var out []*domain.General
	for _, g := range s.generals {
		if g.NationID == nationID {
			out = append(out, g)
		}
	}
	sortGenerals(out)
	return out, nil
}

func (s *Store) GeneralsByCity(_ domain.WorldID, cityID domain.CityID) ([]*domain.General, error) {
	var out []*domain.General
	for _, g := range s.generals {
		if g.CityID == cityID {
			out = append(out, g)
		}
	}
	sortGenerals(out)
	return out, nil
}

func (s *Store) GeneralsByWorld(worldID domain.WorldID) ([]*domain.General, error) {
	var out []*domain.General
	for _, g := range s.generals {
		if g.WorldID == worldID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TurnTime.Equal(out[j].TurnTime) {
			return out[i].TurnTime.Before(out[j].TurnTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) NationsByWorld(worldID domain.WorldID) ([]*domain.Nation, error) {
	var out []*domain.Nation
	for _, n := range s.nations {
		if n.WorldID == worldID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CitiesByWorld(worldID domain.WorldID) ([]*domain.City, error) {
	var out []*domain.City
	for _, c := range s.cities {
		if c.WorldID == worldID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CitiesByNation(worldID domain.WorldID, nationID domain.NationID) ([]*domain.City, error) {
	all, _ := s.CitiesByWorld(worldID)
	var out []*domain.City
	for _, c := range all {
		if c.NationID == nationID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) DiplomaciesByWorld(worldID domain.WorldID) ([]*domain.Diplomacy, error) {
	var out []*domain.Diplomacy
	for _, d := range s.diplomacies {
		if d.WorldID == worldID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SaveGeneral(g *domain.General) error {
	s.generals[g.ID] = g
	return nil
}

func (s *Store) SaveCity(c *domain.City) error {
	s.cities[c.ID] = c
	return nil
}

func (s *Store) SaveNation(n *domain.Nation) error {
	s.nations[n.ID] = n
	return nil
}

func (s *Store) SaveDiplomacy(d *domain.Diplomacy) error {
	s.diplomacies[d.ID] = d
	return nil
}

func (s *Store) NextGeneralTurn(worldID domain.WorldID, generalID domain.GeneralID) (*domain.GeneralTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.generalTurns {
		if t.WorldID == worldID && t.GeneralID == generalID {
			return t, nil
		}
	}
	return nil, nil
}

func (s *Store) ConsumeGeneralTurn(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.generalTurns {
		if t.ID == id {
			s.generalTurns = append(s.generalTurns[:i], s.generalTurns[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) DiscardGeneralTurns(worldID domain.WorldID, generalID domain.GeneralID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.generalTurns[:0]
	for _, t := range s.generalTurns {
		if t.WorldID != worldID || t.GeneralID != generalID {
			kept = append(kept, t)
		}
	}
	s.generalTurns = kept
	return nil
}

func (s *Store) NextNationTurn(worldID domain.WorldID, nationID domain.NationID, officerLevel int8) (*domain.NationTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.nationTurns {
		if t.WorldID == worldID && t.NationID == nationID && t.OfficerLevel == officerLevel {
			return t, nil
		}
	}
	return nil, nil
}

func (s *Store) ConsumeNationTurn(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.nationTurns {
		if t.ID == id {
			s.nationTurns = append(s.nationTurns[:i], s.nationTurns[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) PendingGeneralTurns(worldID domain.WorldID, generalID domain.GeneralID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.generalTurns {
		if t.WorldID == worldID && t.GeneralID == generalID {
			n++
		}
	}
	return n
}

func (s *Store) EventsByPhase(worldID domain.WorldID, phase string) ([]*domain.TurnEvent, error) {
	var out []*domain.TurnEvent
	for _, e := range s.events {
		if e.WorldID == worldID && e.Phase == phase {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) ActiveWorlds(context.Context) ([]*domain.World, error) {
	var out []*domain.World
	for _, w := range s.worlds {
		if w.GatewayActive {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) WorldByID(_ context.Context, id domain.WorldID) (*domain.World, error) {
	return s.worlds[id], nil
}

func (s *Store) SaveWorld(w *domain.World) error {
	s.worlds[w.ID] = w
	return nil
}

func (s *Store) SaveSnapshot(_ context.Context, snap *turn.Snapshot) error {
	s.Snapshots = append(s.Snapshots, snap)
	return nil
}

func (s *Store) SaveBattleReport(_ context.Context, report *war.BattleReport) error {
	s.Reports = append(s.Reports, report)
	return nil
}

func sortGenerals(gs []*domain.General) {
	sort.Slice(gs, func(i, j int) bool { return gs[i].ID < gs[j].ID })
}
