package ai

import (
	"sort"
	"testing"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/rng"
)

type fakeStore struct {
	cities      map[domain.CityID]*domain.City
	nations     map[domain.NationID]*domain.Nation
	generals    []*domain.General
	diplomacies []*domain.Diplomacy
}

func (s *fakeStore) CityByID(_ domain.WorldID, id domain.CityID) (*domain.City, error) {
	return s.cities[id], nil
}

func (s *fakeStore) CitiesByWorld(domain.WorldID) ([]*domain.City, error) {
	out := make([]*domain.City, 0, len(s.cities))
	for _, c := range s.cities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) GeneralsByNation(_ domain.WorldID, nationID domain.NationID) ([]*domain.General, error) {
	var out []*domain.General
	for _, g := range s.generals {
		if g.NationID == nationID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *fakeStore) NationByID(_ domain.WorldID, id domain.NationID) (*domain.Nation, error) {
	return s.nations[id], nil
}

func (s *fakeStore) DiplomaciesByWorld(domain.WorldID) ([]*domain.Diplomacy, error) {
	return s.diplomacies, nil
}

func aiWorld() *domain.World {
	return &domain.World{ID: 1, HiddenSeed: "ai-test", Year: 190, Month: 5, StartYear: 185}
}

func aiRand() *rng.Rand {
	return rng.New("ai-test", "generalAI", int64(1), 190, 5)
}

func TestDecideGeneral_在野武将只休息(t *testing.T) {
	store := &fakeStore{cities: map[domain.CityID]*domain.City{}}
	a := NewGeneralAI(store)

	g := &domain.General{ID: 1, NationID: 0, CityID: 1}
	action, _ := a.DecideGeneral(aiWorld(), g, aiRand())
	if action != domain.ActionRest {
		t.Fatalf("expect rest, got %s", action)
	}
}

func TestDecideGeneral_重伤武将优先休养(t *testing.T) {
	store := &fakeStore{cities: map[domain.CityID]*domain.City{
		1: {ID: 1, NationID: 1, AgriMax: 1000},
	}}
	a := NewGeneralAI(store)

	g := &domain.General{ID: 1, NationID: 1, CityID: 1, Injury: 40, Strength: 90}
	action, _ := a.DecideGeneral(aiWorld(), g, aiRand())
	if action != domain.ActionRest {
		t.Fatalf("wounded general must rest, got %s", action)
	}
}

func TestDecideGeneral_战时缺兵先征募(t *testing.T) {
	store := &fakeStore{
		cities: map[domain.CityID]*domain.City{
			1: {ID: 1, NationID: 1},
		},
		diplomacies: []*domain.Diplomacy{
			{NationID: 1, TargetID: 2, State: domain.DipWar},
		},
	}
	a := NewGeneralAI(store)

	g := &domain.General{ID: 1, NationID: 1, CityID: 1, Leadership: 60, Gold: 2000, Crew: 50}
	action, arg := a.DecideGeneral(aiWorld(), g, aiRand())
	if action != "levy" {
		t.Fatalf("expect levy, got %s", action)
	}
	if amount, _ := arg["amount"].(int64); amount != 5950 {
		t.Fatalf("expect amount 5950, got %v", arg["amount"])
	}
}

func TestDecideGeneral_战时前线满编出兵(t *testing.T) {
	store := &fakeStore{
		cities: map[domain.CityID]*domain.City{
			1: {ID: 1, NationID: 1, FrontState: domain.FrontWar, Adjacent: []int64{2}},
			2: {ID: 2, NationID: 2},
		},
		diplomacies: []*domain.Diplomacy{
			{NationID: 1, TargetID: 2, State: domain.DipWar},
		},
	}
	a := NewGeneralAI(store)

	g := &domain.General{ID: 1, NationID: 1, CityID: 1, Leadership: 80,
		Crew: 6000, Train: 90, Atmos: 90}
	action, arg := a.DecideGeneral(aiWorld(), g, aiRand())
	if action != "advance" {
		t.Fatalf("expect advance, got %s", action)
	}
	if dest, _ := arg["destCityId"].(int64); dest != 2 {
		t.Fatalf("expect target city 2, got %v", arg["destCityId"])
	}
}

func TestDecideGeneral_战时后方武将向前线移动(t *testing.T) {
	store := &fakeStore{
		cities: map[domain.CityID]*domain.City{
			1: {ID: 1, NationID: 1},
			2: {ID: 2, NationID: 1, FrontState: domain.FrontBorder},
		},
		diplomacies: []*domain.Diplomacy{
			{NationID: 1, TargetID: 2, State: domain.DipWar},
		},
	}
	a := NewGeneralAI(store)

	g := &domain.General{ID: 1, NationID: 1, CityID: 1, Leadership: 80,
		Crew: 6000, Train: 90, Atmos: 90}
	action, arg := a.DecideGeneral(aiWorld(), g, aiRand())
	if action != "move" {
		t.Fatalf("expect move, got %s", action)
	}
	if dest, _ := arg["destCityId"].(int64); dest != 2 {
		t.Fatalf("expect front city 2, got %v", arg["destCityId"])
	}
}

func TestDecideGeneral_太平年景低开发先补内政(t *testing.T) {
	store := &fakeStore{cities: map[domain.CityID]*domain.City{
		1: {ID: 1, NationID: 1, Agri: 100, AgriMax: 1000, Comm: 900, CommMax: 1000, Secu: 900, SecuMax: 1000},
	}}
	a := NewGeneralAI(store)

	g := &domain.General{ID: 1, NationID: 1, CityID: 1, Leadership: 60, Strength: 50, Intel: 50}
	action, _ := a.DecideGeneral(aiWorld(), g, aiRand())
	if action != "devAgri" {
		t.Fatalf("expect devAgri, got %s", action)
	}
}

func TestDecideGeneral_武斗派练兵优先(t *testing.T) {
	store := &fakeStore{cities: map[domain.CityID]*domain.City{
		1: {ID: 1, NationID: 1, Agri: 900, AgriMax: 1000, Comm: 900, CommMax: 1000, Secu: 900, SecuMax: 1000},
	}}
	a := NewGeneralAI(store)

	g := &domain.General{ID: 1, NationID: 1, CityID: 1, Leadership: 60, Strength: 95, Intel: 40,
		Crew: 500, Train: 60}
	action, _ := a.DecideGeneral(aiWorld(), g, aiRand())
	if action != "train" {
		t.Fatalf("warrior must train, got %s", action)
	}
}

func TestDecideGeneral_同一种子决策可复现(t *testing.T) {
	store := &fakeStore{cities: map[domain.CityID]*domain.City{
		1: {ID: 1, NationID: 1, Agri: 900, AgriMax: 1000, Comm: 900, CommMax: 1000, Secu: 900, SecuMax: 1000},
	}}
	a := NewGeneralAI(store)
	g := &domain.General{ID: 1, NationID: 1, CityID: 1, Leadership: 50, Strength: 40, Intel: 60}

	first, _ := a.DecideGeneral(aiWorld(), g, aiRand())
	second, _ := a.DecideGeneral(aiWorld(), g, aiRand())
	if first != second {
		t.Fatalf("same seed must repeat decision: %s vs %s", first, second)
	}
}
