package alphavantage

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/guttosm/intradaypulse/internal/domain/models"
)

const (
	fieldErrorMessage = "Error Message"
	fieldInformation  = "Information"
	fieldNote         = "Note"
	fieldMetaData     = "Meta Data"
	seriesPrefix      = "Time Series"
	premiumMarker     = "premium"
)

// payload is the decoded top level of a response. Advisory fields keep their
// text; the series stays raw until a rule needs it.
type payload struct {
	errorMessage string
	information  string
	note         string
	series       json.RawMessage
}

// rule is one step of the classification. Rules are evaluated in order and
// the first match wins; the provider may fill several advisory fields at once.
type rule struct {
	outcome models.Outcome
	match   func(p payload) (message string, ok bool)
}

var rules = []rule{
	{models.OutcomeHardError, func(p payload) (string, bool) {
		return p.errorMessage, p.errorMessage != ""
	}},
	{models.OutcomeTierDenied, func(p payload) (string, bool) {
		return p.information, strings.Contains(strings.ToLower(p.information), premiumMarker)
	}},
	{models.OutcomeSoftNote, func(p payload) (string, bool) {
		return p.note, p.note != ""
	}},
}

// Classify maps a raw response body to exactly one outcome:
//  1. "Error Message" non-empty      -> HardError
//  2. "Information" mentions premium -> TierDenied
//  3. "Note" non-empty               -> SoftNote
//  4. no or empty time series        -> Empty
//  5. otherwise                      -> Valid, with the decoded series
//
// The series is read from the "Time Series (<interval>)" key only; other series
// keys are ignored. With an empty interval the lexicographically first
// "Time Series" key is used, so the result never depends on key order.
//
// It only fails, with *DecodeError, when the body is not a JSON object or the
// series cannot be decoded at all. Shape anomalies inside observations (numbers
// instead of strings, nulls, missing fields) are tolerated.
func Classify(body []byte, interval string) (models.Classification, error) {
	p, err := decodePayload(body, interval)
	if err != nil {
		return models.Classification{}, &DecodeError{Err: err}
	}

	for _, r := range rules {
		if msg, ok := r.match(p); ok {
			return models.Classification{Outcome: r.outcome, Message: msg, Information: p.information}, nil
		}
	}

	series, err := decodeSeries(p.series)
	if err != nil {
		return models.Classification{}, &DecodeError{Err: err}
	}
	if len(series) == 0 {
		return models.Classification{Outcome: models.OutcomeEmpty, Information: p.information}, nil
	}
	return models.Classification{Outcome: models.OutcomeValid, Information: p.information, Series: series}, nil
}

// SeriesKey is the top-level key holding the observations for interval.
func SeriesKey(interval string) string {
	return seriesPrefix + " (" + interval + ")"
}

func decodePayload(body []byte, interval string) (payload, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return payload{}, err
	}

	var p payload
	var seriesKeys []string
	for key, raw := range top {
		switch {
		case key == fieldErrorMessage:
			p.errorMessage = advisoryText(raw)
		case key == fieldInformation:
			p.information = advisoryText(raw)
		case key == fieldNote:
			p.note = advisoryText(raw)
		case key == fieldMetaData:
			// not needed for classification
		case strings.HasPrefix(key, seriesPrefix):
			seriesKeys = append(seriesKeys, key)
		}
	}

	if interval != "" {
		p.series = top[SeriesKey(interval)]
	} else if len(seriesKeys) > 0 {
		sort.Strings(seriesKeys)
		p.series = top[seriesKeys[0]]
	}
	return p, nil
}

// advisoryText returns the trimmed text of an advisory field. Non-string
// values are kept as their JSON text so that their presence still counts.
func advisoryText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

type wireObservation struct {
	Open   flexString `json:"1. open"`
	High   flexString `json:"2. high"`
	Low    flexString `json:"3. low"`
	Close  flexString `json:"4. close"`
	Volume flexString `json:"5. volume"`
}

func decodeSeries(raw json.RawMessage) (models.TimeSeries, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var wire map[string]wireObservation
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	series := make(models.TimeSeries, len(wire))
	for ts, w := range wire {
		series[ts] = models.RawObservation{
			Open:   string(w.Open),
			High:   string(w.High),
			Low:    string(w.Low),
			Close:  string(w.Close),
			Volume: string(w.Volume),
		}
	}
	return series, nil
}

// flexString accepts a JSON string or number and keeps its text. Any other
// JSON value (null, bool, object) decodes to the empty string.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	*f = ""
	return nil
}
