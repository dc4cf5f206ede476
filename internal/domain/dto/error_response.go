package dto

import "time"

// ErrorResponse is the JSON body returned for every non-2xx response.
//
// Fields:
//   - Message: human-readable summary safe to show to clients.
//   - ErrorDetails: underlying error text; omitted when it could leak upstream diagnostics.
//   - Timestamp: when the error response was built (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"symbol is required"`
	ErrorDetails string    `json:"error_details,omitempty" example:""`
	Timestamp    time.Time `json:"timestamp" example:"2024-10-16T12:00:00Z"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
