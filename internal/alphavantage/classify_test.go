package alphavantage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/intradaypulse/internal/domain/models"
)

const validBody = `{
  "Meta Data": {
    "1. Information": "Intraday (15min) open, high, low, close prices and volume",
    "2. Symbol": "IBM",
    "3. Last Refreshed": "2024-10-16 19:45:00",
    "4. Interval": "15min",
    "5. Output Size": "Compact",
    "6. Time Zone": "US/Eastern"
  },
  "Time Series (15min)": {
    "2024-10-16 09:30:00": {"1. open": "91", "2. high": "95", "3. low": "90", "4. close": "94", "5. volume": "500"},
    "2024-10-15 09:45:00": {"1. open": "103", "2. high": "107", "3. low": "102", "4. close": "106", "5. volume": "2000"}
  }
}`

func TestClassify_Outcomes(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		outcome models.Outcome
		message string
	}{
		{
			name:    "hard error",
			body:    `{"Error Message": "Invalid API call. Please retry or visit the documentation."}`,
			outcome: models.OutcomeHardError,
			message: "Invalid API call. Please retry or visit the documentation.",
		},
		{
			name:    "hard error wins over premium information",
			body:    `{"Error Message": "bad symbol", "Information": "This is a premium endpoint."}`,
			outcome: models.OutcomeHardError,
			message: "bad symbol",
		},
		{
			name:    "tier denied",
			body:    `{"Information": "Thank you for using Alpha Vantage! This is a PREMIUM feature."}`,
			outcome: models.OutcomeTierDenied,
			message: "Thank you for using Alpha Vantage! This is a PREMIUM feature.",
		},
		{
			name:    "tier denied wins over note",
			body:    `{"Information": "premium required", "Note": "slow down"}`,
			outcome: models.OutcomeTierDenied,
			message: "premium required",
		},
		{
			name:    "note",
			body:    `{"Note": "Our standard API call frequency is 5 calls per minute."}`,
			outcome: models.OutcomeSoftNote,
			message: "Our standard API call frequency is 5 calls per minute.",
		},
		{
			name:    "non premium information falls through to note",
			body:    `{"Information": "rate limited", "Note": "slow down"}`,
			outcome: models.OutcomeSoftNote,
			message: "slow down",
		},
		{
			name:    "blank error message is ignored",
			body:    `{"Error Message": "   ", "Note": "slow down"}`,
			outcome: models.OutcomeSoftNote,
			message: "slow down",
		},
		{
			name:    "missing series",
			body:    `{"Meta Data": {"2. Symbol": "IBM"}}`,
			outcome: models.OutcomeEmpty,
		},
		{
			name:    "empty series",
			body:    `{"Time Series (15min)": {}}`,
			outcome: models.OutcomeEmpty,
		},
		{
			name:    "null series",
			body:    `{"Time Series (15min)": null}`,
			outcome: models.OutcomeEmpty,
		},
		{
			name:    "non premium information alone is empty",
			body:    `{"Information": "We have detected your API key as ..."}`,
			outcome: models.OutcomeEmpty,
		},
		{
			name:    "valid",
			body:    validBody,
			outcome: models.OutcomeValid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify([]byte(tc.body), "15min")
			require.NoError(t, err)
			require.Equal(t, tc.outcome, got.Outcome)
			require.Equal(t, tc.message, got.Message)
			if tc.outcome != models.OutcomeValid {
				require.Nil(t, got.Series)
			}
		})
	}
}

func TestClassify_ValidSeries(t *testing.T) {
	got, err := Classify([]byte(validBody), "15min")
	require.NoError(t, err)
	require.Equal(t, models.OutcomeValid, got.Outcome)
	require.Equal(t, models.TimeSeries{
		"2024-10-16 09:30:00": {Open: "91", High: "95", Low: "90", Close: "94", Volume: "500"},
		"2024-10-15 09:45:00": {Open: "103", High: "107", Low: "102", Close: "106", Volume: "2000"},
	}, got.Series)
}

func TestClassify_ToleratesNonStringFields(t *testing.T) {
	body := `{"Time Series (5min)": {
		"2024-10-15 09:30:00": {"2. high": 105.5, "3. low": null, "5. volume": 1000},
		"2024-10-15 09:35:00": {"2. high": true, "3. low": {"x": 1}}
	}}`

	got, err := Classify([]byte(body), "5min")
	require.NoError(t, err)
	require.Equal(t, models.OutcomeValid, got.Outcome)
	require.Equal(t, models.RawObservation{High: "105.5", Volume: "1000"}, got.Series["2024-10-15 09:30:00"])
	require.Equal(t, models.RawObservation{}, got.Series["2024-10-15 09:35:00"])
}

func TestClassify_DecodeErrors(t *testing.T) {
	for _, body := range []string{`not json`, `[1,2,3]`, `"text"`, `{"Time Series (15min)": "oops"}`} {
		_, err := Classify([]byte(body), "15min")
		var de *DecodeError
		require.True(t, errors.As(err, &de), "body %q: want DecodeError, got %v", body, err)
	}
}

func TestClassify_SeriesKeySelection(t *testing.T) {
	body := `{
		"Time Series (15min)": {"2024-10-15 09:30:00": {"2. high": "105", "3. low": "100", "5. volume": "1000"}},
		"Time Series (Daily)": {}
	}`

	for i := 0; i < 50; i++ {
		got, err := Classify([]byte(body), "15min")
		require.NoError(t, err)
		require.Equal(t, models.OutcomeValid, got.Outcome)
		require.Len(t, got.Series, 1)
	}

	other, err := Classify([]byte(body), "5min")
	require.NoError(t, err)
	require.Equal(t, models.OutcomeEmpty, other.Outcome)

	// without an interval the first key in lexical order wins: "(15min)" < "(Daily)"
	for i := 0; i < 50; i++ {
		got, err := Classify([]byte(body), "")
		require.NoError(t, err)
		require.Equal(t, models.OutcomeValid, got.Outcome)
	}
}

func TestSeriesKey(t *testing.T) {
	require.Equal(t, "Time Series (15min)", SeriesKey("15min"))
}
