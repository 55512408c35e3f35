package command

import "github.com/peppone-choi/opensamguk-sub002/internal/game/domain"

// ApplyEffects 把命令产生的增量写回实体。
// 武将命令不在 Run 里直接改实体，统一经此处落账，
// 方便钳位规则集中在一个地方。
func ApplyEffects(
	e *Effects,
	general *domain.General,
	city *domain.City,
	nation *domain.Nation,
	destGeneral *domain.General,
	destCity *domain.City,
	destNation *domain.Nation,
) {
	if e == nil {
		return
	}

	if e.General != nil {
		applyGeneralDelta(general, e.General)
	}
	if e.DestGeneral != nil && destGeneral != nil {
		applyGeneralDelta(destGeneral, e.DestGeneral)
	}
	if e.City != nil && city != nil {
		applyCityDelta(city, e.City)
	}
	if e.DestCity != nil && destCity != nil {
		applyCityDelta(destCity, e.DestCity)
	}
	if e.Nation != nil && nation != nil {
		applyNationDelta(nation, e.Nation)
	}
	if e.DestNation != nil && destNation != nil {
		applyNationDelta(destNation, e.DestNation)
	}
	if e.Dex != nil && general != nil {
		general.AddDex(e.Dex.CrewType, e.Dex.Amount)
		if general.DexFor(e.Dex.CrewType) < 0 {
			general.AddDex(e.Dex.CrewType, -general.DexFor(e.Dex.CrewType))
		}
	}
	if u := e.CityStateUpdate; u != nil && destCity != nil && destCity.ID == u.CityID {
		destCity.State = u.State
		destCity.StateTerm = u.Term
	}
}

func applyGeneralDelta(g *domain.General, d *GeneralDelta) {
	if g == nil {
		return
	}
	g.Gold = max64(0, g.Gold+d.Gold)
	g.Rice = max64(0, g.Rice+d.Rice)
	g.Crew = maxInt(0, g.Crew+d.Crew)
	g.Train = clampInt(g.Train+d.Train, 0, 100)
	g.Atmos = clampInt(g.Atmos+d.Atmos, 0, 100)
	g.Experience = maxInt(0, g.Experience+d.Experience)
	g.Dedication = maxInt(0, g.Dedication+d.Dedication)
	g.LeadershipExp += d.LeadershipExp
	g.StrengthExp += d.StrengthExp
	g.IntelExp += d.IntelExp
	g.Injury = clampInt(g.Injury+d.Injury, 0, 100)
	g.Belong += d.Belong
	g.Betray += d.Betray
	if d.CrewType != nil {
		g.CrewType = *d.CrewType
	}
	if d.CityID != nil && *d.CityID > 0 {
		g.CityID = *d.CityID
	}
}

func applyCityDelta(c *domain.City, d *CityDelta) {
	c.Agri = clampInt(c.Agri+d.Agri, 0, c.AgriMax)
	c.Comm = clampInt(c.Comm+d.Comm, 0, c.CommMax)
	c.Secu = clampInt(c.Secu+d.Secu, 0, c.SecuMax)
	c.Def = clampInt(c.Def+d.Def, 0, c.DefMax)
	c.Wall = clampInt(c.Wall+d.Wall, 0, c.WallMax)
	c.Pop = clampInt(c.Pop+d.Pop, 0, c.PopMax)
	c.Trust = clampF(c.Trust+d.Trust, 0, 100)
	c.Dead = max64(0, c.Dead+d.Dead)
	if d.Trade != 0 && c.Trade != nil {
		v := maxInt(0, *c.Trade+d.Trade)
		c.Trade = &v
	}
	if d.State != nil {
		c.State = *d.State
	}
}

func applyNationDelta(n *domain.Nation, d *NationDelta) {
	n.Gold = max64(0, n.Gold+d.Gold)
	n.Rice = max64(0, n.Rice+d.Rice)
	n.Tech = maxF(0, n.Tech+d.Tech)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
