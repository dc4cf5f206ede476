package alphavantage

import "fmt"

// DecodeError reports a payload that is not a JSON object.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode alpha vantage response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx HTTP status from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("alpha vantage returned status %d", e.StatusCode)
}
