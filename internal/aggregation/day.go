package aggregation

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/intradaypulse/internal/domain/models"
)

const dayLayout = "2006-01-02"

// timestampLayouts are tried in order when deriving the calendar day of an
// observation. The provider sends "YYYY-MM-DD HH:MM:SS"; the others are
// accepted for robustness.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	dayLayout,
}

// Report is the full result of reducing a series: the per-day aggregates and
// the timestamps that could not be mapped to a calendar day.
type Report struct {
	Days    []models.DayAggregate
	Skipped []string
}

// Aggregate reduces an intraday series into one DayAggregate per calendar
// day, ordered ascending by day. It never fails: malformed numeric fields are
// ignored according to the rules in Reduce.
func Aggregate(series models.TimeSeries) []models.DayAggregate {
	return Reduce(series).Days
}

// Reduce groups the series by calendar day and computes, for each group:
//   - LowAverage / HighAverage: mean of the values that parse as decimals.
//     Unparseable values are excluded from numerator and denominator. A group
//     with no parseable value yields 0.
//   - Volume: sum of the values that parse as base-10 integers; the rest
//     contribute 0. The sum saturates at the int64 bounds.
//
// Entries whose timestamp yields no valid date are reported in Skipped
// (sorted) and do not produce a day.
func Reduce(series models.TimeSeries) Report {
	groups := make(map[string][]models.RawObservation)
	var skipped []string

	for ts, obs := range series {
		day, ok := DayKey(ts)
		if !ok {
			skipped = append(skipped, ts)
			continue
		}
		groups[day] = append(groups[day], obs)
	}

	days := make([]models.DayAggregate, 0, len(groups))
	for day, obs := range groups {
		days = append(days, reduceDay(day, obs))
	}

	// "YYYY-MM-DD" keys sort chronologically as strings.
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	sort.Strings(skipped)

	return Report{Days: days, Skipped: skipped}
}

// DayKey derives the canonical "YYYY-MM-DD" day of a timestamp. When no full
// layout matches, the leading whitespace-delimited token is used, but only if
// it is itself a valid date.
func DayKey(timestamp string) (string, bool) {
	ts := strings.TrimSpace(timestamp)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format(dayLayout), true
		}
	}

	fields := strings.Fields(ts)
	if len(fields) == 0 {
		return "", false
	}
	t, err := time.Parse(dayLayout, fields[0])
	if err != nil {
		return "", false
	}
	return t.Format(dayLayout), true
}

func reduceDay(day string, obs []models.RawObservation) models.DayAggregate {
	lows := make([]string, 0, len(obs))
	highs := make([]string, 0, len(obs))
	volumes := make([]string, 0, len(obs))
	for _, o := range obs {
		lows = append(lows, o.Low)
		highs = append(highs, o.High)
		volumes = append(volumes, o.Volume)
	}

	return models.DayAggregate{
		Day:         day,
		LowAverage:  mean(parseDecimals(lows)),
		HighAverage: mean(parseDecimals(highs)),
		Volume:      sumInts(volumes),
	}
}

// parseDecimals keeps only the values that parse; the rest are dropped.
func parseDecimals(values []string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

func mean(values []decimal.Decimal) float64 {
	if len(values) == 0 {
		return 0
	}
	return decimal.Sum(values[0], values[1:]...).
		Div(decimal.NewFromInt(int64(len(values)))).
		InexactFloat64()
}

// sumInts adds the parseable values, saturating at the int64 bounds instead
// of wrapping.
func sumInts(values []string) int64 {
	var total int64
	for _, v := range values {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			continue
		}
		switch {
		case n > 0 && total > math.MaxInt64-n:
			total = math.MaxInt64
		case n < 0 && total < math.MinInt64-n:
			total = math.MinInt64
		default:
			total += n
		}
	}
	return total
}
