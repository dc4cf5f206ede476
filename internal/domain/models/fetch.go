package models

// Tier identifies the upstream service level a request was issued against.
type Tier string

const (
	// TierPremium requests the full output size scoped to last month.
	TierPremium Tier = "premium"
	// TierFree requests the compact, most-recent window.
	TierFree Tier = "free"
)

// Outcome is the classification of a single upstream response.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeHardError
	OutcomeTierDenied
	OutcomeSoftNote
	OutcomeEmpty
	OutcomeValid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHardError:
		return "hard_error"
	case OutcomeTierDenied:
		return "tier_denied"
	case OutcomeSoftNote:
		return "soft_note"
	case OutcomeEmpty:
		return "empty"
	case OutcomeValid:
		return "valid"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the fetch without data.
// Only TierDenied may lead to another attempt.
func (o Outcome) Terminal() bool {
	return o == OutcomeHardError || o == OutcomeSoftNote
}

// Classification is the result of inspecting one upstream payload.
//
// Message carries the advisory text for HardError, TierDenied and SoftNote.
// Information keeps any non-premium informational text for diagnostics.
// Series is only populated for OutcomeValid.
type Classification struct {
	Outcome     Outcome
	Message     string
	Information string
	Series      TimeSeries
}

// FetchAttempt records one upstream call. URL never contains the credential.
type FetchAttempt struct {
	Tier    Tier
	URL     string
	Outcome Outcome
}

// IntradayResult is the outcome of one fetch-then-reduce operation.
type IntradayResult struct {
	Symbol   string
	Tier     Tier
	Days     []DayAggregate
	Attempts []FetchAttempt
}
