package gemini

import "fmt"

// ErrorCode represents specific gateway error types.
type ErrorCode string

const (
	ErrUnavailable   ErrorCode = "GEMINI_UNAVAILABLE"
	ErrRateLimited   ErrorCode = "GEMINI_RATE_LIMITED"
	ErrBadRequest    ErrorCode = "GEMINI_BAD_REQUEST"
	ErrEmptyResponse ErrorCode = "EMPTY_RESPONSE"
)

// GatewayError is a structured error for Gemini call failures. Callers
// never see it as a raised fault at the UI boundary; the service layer
// degrades to "feature unavailable" instead.
type GatewayError struct {
	Code      ErrorCode
	Op        string // e.g. "insights", "market", "extract"
	Message   string
	Retryable bool
	Cause     error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s %s: %v", e.Code, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s %s", e.Code, e.Op, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether this error is retryable.
func (e *GatewayError) IsRetryable() bool {
	return e.Retryable
}
