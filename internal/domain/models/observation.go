package models

// RawObservation is one upstream intraday sample. Every field is kept as the
// text the provider sent; the provider does not guarantee numeric encoding.
//
// Fields:
//   - Open, High, Low, Close: prices as strings (e.g. "187.4100").
//   - Volume: traded quantity as a string (e.g. "10254").
type RawObservation struct {
	Open   string
	High   string
	Low    string
	Close  string
	Volume string
}

// TimeSeries maps a timestamp ("YYYY-MM-DD HH:MM[:SS]") to its observation.
// Key order carries no meaning; consumers re-sort.
type TimeSeries map[string]RawObservation
