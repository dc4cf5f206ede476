package models

// DayAggregate is one row of the daily reduction of an intraday series.
//
// Fields:
//   - Day: calendar date in YYYY-MM-DD format.
//   - LowAverage: mean of the parseable "low" prices observed that day.
//   - HighAverage: mean of the parseable "high" prices observed that day.
//   - Volume: sum of the parseable volumes observed that day.
//
// swagger:model DayAggregate
type DayAggregate struct {
	Day         string  `json:"day" example:"2024-10-15"`
	LowAverage  float64 `json:"lowAverage" example:"101.25"`
	HighAverage float64 `json:"highAverage" example:"106.4"`
	Volume      int64   `json:"volume" example:"3000"`
}
