package command

import "github.com/peppone-choi/opensamguk-sub002/internal/game/domain"

// GeneralDelta 武将字段的增量。CrewType 和 CityID 是赋值而非增量。
type GeneralDelta struct {
	Gold          int64   `json:"gold,omitempty"`
	Rice          int64   `json:"rice,omitempty"`
	Crew          int     `json:"crew,omitempty"`
	Train         int     `json:"train,omitempty"`
	Atmos         int     `json:"atmos,omitempty"`
	Experience    int     `json:"experience,omitempty"`
	Dedication    int     `json:"dedication,omitempty"`
	LeadershipExp int     `json:"leadershipExp,omitempty"`
	StrengthExp   int     `json:"strengthExp,omitempty"`
	IntelExp      int     `json:"intelExp,omitempty"`
	Injury        int     `json:"injury,omitempty"`
	Belong        int     `json:"belong,omitempty"`
	Betray        int     `json:"betray,omitempty"`
	CrewType      *int8   `json:"crewType,omitempty"`
	CityID        *domain.CityID `json:"cityId,omitempty"`
}

// CityDelta 城市字段的增量，State 是赋值。
type CityDelta struct {
	Agri  int      `json:"agri,omitempty"`
	Comm  int      `json:"comm,omitempty"`
	Secu  int      `json:"secu,omitempty"`
	Def   int      `json:"def,omitempty"`
	Wall  int      `json:"wall,omitempty"`
	Pop   int      `json:"pop,omitempty"`
	Trust float64  `json:"trust,omitempty"`
	Dead  int64    `json:"dead,omitempty"`
	Trade int      `json:"trade,omitempty"`
	State *int8    `json:"state,omitempty"`
}

type NationDelta struct {
	Gold int64   `json:"gold,omitempty"`
	Rice int64   `json:"rice,omitempty"`
	Tech float64 `json:"tech,omitempty"`
}

// DexDelta 兵种熟练度增量。
type DexDelta struct {
	CrewType int8  `json:"crewType"`
	Amount   int64 `json:"amount"`
}

// CityStateUpdate 对目标城市设置特殊状态（例如出兵后的备战状态）。
type CityStateUpdate struct {
	CityID domain.CityID `json:"cityId"`
	State  int8          `json:"state"`
	Term   int           `json:"term"`
}

// Effects 命令产生的全部增量，由 Applicator 统一写回实体。
type Effects struct {
	General     *GeneralDelta `json:"statChanges,omitempty"`
	DestGeneral *GeneralDelta `json:"destGeneralChanges,omitempty"`
	City        *CityDelta    `json:"cityChanges,omitempty"`
	DestCity    *CityDelta    `json:"destCityChanges,omitempty"`
	Nation      *NationDelta  `json:"nationChanges,omitempty"`
	DestNation  *NationDelta  `json:"destNationChanges,omitempty"`
	Dex         *DexDelta     `json:"dexChanges,omitempty"`

	CityStateUpdate *CityStateUpdate `json:"cityStateUpdate,omitempty"`

	// 出兵命令置位，回合服务据此调用战斗结算
	BattleTriggered bool          `json:"battleTriggered,omitempty"`
	TargetCityID    domain.CityID `json:"targetCityId,omitempty"`
}
