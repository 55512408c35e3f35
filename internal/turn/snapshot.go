package turn

import (
	"time"

	"github.com/peppone-choi/opensamguk-sub002/internal/game/domain"
)

// Snapshot 每月落一份的世界状态切片，用于回放校验与排行榜统计。
// 字段集保持稳定，改动会破坏历史快照的可比性。
type Snapshot struct {
	WorldID   int64             `bson:"worldId"`
	Year      int               `bson:"year"`
	Month     int               `bson:"month"`
	Generals  []GeneralSnapshot `bson:"generals"`
	Nations   []NationSnapshot  `bson:"nations"`
	Cities    []CitySnapshot    `bson:"cities"`
	CreatedAt time.Time         `bson:"createdAt"`
}

type GeneralSnapshot struct {
	ID         int64 `bson:"id"`
	Crew       int   `bson:"crew"`
	Train      int   `bson:"train"`
	Atmos      int   `bson:"atmos"`
	Experience int   `bson:"experience"`
	Dedication int   `bson:"dedication"`
}

type NationSnapshot struct {
	ID                int64 `bson:"id"`
	Gold              int64 `bson:"gold"`
	Rice              int64 `bson:"rice"`
	StrategicCmdLimit int   `bson:"strategicCmdLimit"`
}

type CitySnapshot struct {
	ID       int64 `bson:"id"`
	NationID int64 `bson:"nationId"`
	Agri     int   `bson:"agri"`
	Comm     int   `bson:"comm"`
	Secu     int   `bson:"secu"`
	Pop      int   `bson:"pop"`
}

func buildSnapshot(world *domain.World, generals []*domain.General, nations []*domain.Nation, cities []*domain.City) *Snapshot {
	snap := &Snapshot{
		WorldID:   int64(world.ID),
		Year:      world.Year,
		Month:     world.Month,
		CreatedAt: time.Now(),
	}
	for _, g := range generals {
		snap.Generals = append(snap.Generals, GeneralSnapshot{
			ID:         int64(g.ID),
			Crew:       g.Crew,
			Train:      g.Train,
			Atmos:      g.Atmos,
			Experience: g.Experience,
			Dedication: g.Dedication,
		})
	}
	for _, n := range nations {
		snap.Nations = append(snap.Nations, NationSnapshot{
			ID:                int64(n.ID),
			Gold:              n.Gold,
			Rice:              n.Rice,
			StrategicCmdLimit: n.StrategicCmdLimit,
		})
	}
	for _, c := range cities {
		snap.Cities = append(snap.Cities, CitySnapshot{
			ID:       int64(c.ID),
			NationID: int64(c.NationID),
			Agri:     c.Agri,
			Comm:     c.Comm,
			Secu:     c.Secu,
			Pop:      c.Pop,
		})
	}
	return snap
}
