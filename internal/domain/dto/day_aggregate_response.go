package dto

import "github.com/guttosm/intradaypulse/internal/domain/models"

// DayAggregateResponse is one element of the GET /api/v1/intraday response array.
//
// Fields match the API contract and may differ from internal domain models.
type DayAggregateResponse struct {
	Day         string  `json:"day" example:"2024-10-15"`    // Calendar day (YYYY-MM-DD)
	LowAverage  float64 `json:"lowAverage" example:"101.0"`  // Mean of the day's low prices
	HighAverage float64 `json:"highAverage" example:"106.0"` // Mean of the day's high prices
	Volume      int64   `json:"volume" example:"3000"`       // Total traded volume of the day
}

// NewDayAggregateResponses maps domain aggregates to response DTOs. The result
// is never nil so that an empty series encodes as [].
func NewDayAggregateResponses(days []models.DayAggregate) []DayAggregateResponse {
	out := make([]DayAggregateResponse, 0, len(days))
	for _, d := range days {
		out = append(out, DayAggregateResponse{
			Day:         d.Day,
			LowAverage:  d.LowAverage,
			HighAverage: d.HighAverage,
			Volume:      d.Volume,
		})
	}
	return out
}
