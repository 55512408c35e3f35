package domain

type WorldID int64
type GeneralID int64
type NationID int64
type CityID int64

// NationNeutral 在野（无所属势力）。
const NationNeutral NationID = 0
