package mudrex

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/thrasher-corp/mudrex/encoding/json"
	"github.com/thrasher-corp/mudrex/exchanges/request"
)

// Kind is the closed set of failure classes reported by the API
type Kind uint8

// Kinds
const (
	KindGeneric Kind = iota
	KindAuthentication
	KindRateLimit
	KindValidation
	KindNotFound
	KindConflict
	KindServerError
	KindInsufficientBalance
)

// Error codes returned in failure envelopes
const (
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeServerError         = "SERVER_ERROR"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeUnknownError        = "UNKNOWN_ERROR"

	defaultErrorMessage       = "An unknown error occurred"
	rateLimitExhaustedMessage = "Rate limit exceeded after retries"
)

// Sentinel errors matched by errors.Is against an *APIError of the same kind
var (
	ErrGeneric             = errors.New("mudrex API error")
	ErrAuthentication      = errors.New("authentication failed")
	ErrRateLimit           = errors.New("rate limit exceeded")
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("conflicting or duplicate action")
	ErrServerError         = errors.New("server error")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "Authentication"
	case KindRateLimit:
		return "RateLimit"
	case KindValidation:
		return "Validation"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindServerError:
		return "ServerError"
	case KindInsufficientBalance:
		return "InsufficientBalance"
	default:
		return "Generic"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindAuthentication:
		return ErrAuthentication
	case KindRateLimit:
		return ErrRateLimit
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindServerError:
		return ErrServerError
	case KindInsufficientBalance:
		return ErrInsufficientBalance
	default:
		return ErrGeneric
	}
}

// KindFromCode maps a failure envelope code to its kind. Unknown and empty
// codes are Generic.
func KindFromCode(code string) Kind {
	switch code {
	case CodeUnauthorized, CodeForbidden:
		return KindAuthentication
	case CodeRateLimitExceeded:
		return KindRateLimit
	case CodeInvalidRequest:
		return KindValidation
	case CodeNotFound:
		return KindNotFound
	case CodeConflict:
		return KindConflict
	case CodeServerError:
		return KindServerError
	case CodeInsufficientBalance:
		return KindInsufficientBalance
	default:
		return KindGeneric
	}
}

// APIError is returned for every failed request
type APIError struct {
	Kind       Kind
	Message    string
	Code       string
	StatusCode int
	RequestID  string
	// RetryAfter is only set on rate limit errors raised after the retry
	// budget was spent
	RetryAfter time.Duration
	// Response is the raw envelope as received
	Response json.RawMessage
	// Err is the underlying cause for failures that never produced an
	// envelope, such as transport errors
	Err error
}

// Error implements the error interface
func (e *APIError) Error() string {
	parts := []string{e.Message}
	if e.Code != "" {
		parts = append(parts, "Code: "+e.Code)
	}
	if e.StatusCode != 0 {
		parts = append(parts, "Status: "+strconv.Itoa(e.StatusCode))
	}
	if e.RequestID != "" {
		parts = append(parts, "Request ID: "+e.RequestID)
	}
	return strings.Join(parts, " | ")
}

// Is reports whether target is the sentinel error for this error's kind
func (e *APIError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Unwrap returns the underlying cause, if any
func (e *APIError) Unwrap() error {
	return e.Err
}

// Classify converts an envelope and HTTP status into an *APIError. It returns
// nil when the envelope reports success, which includes an absent success key.
func Classify(env *Envelope, statusCode int) error {
	if env == nil || env.Success {
		return nil
	}
	code := env.Code
	if code == "" {
		code = CodeUnknownError
	}
	message := env.Message
	if message == "" {
		message = defaultErrorMessage
	}
	return &APIError{
		Kind:       KindFromCode(code),
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		RequestID:  env.RequestID,
		Response:   env.Raw,
	}
}

// classify is the requester hook run on the final response of every request
func classify(resp *request.Response) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		return &APIError{
			Kind:       KindRateLimit,
			Message:    rateLimitExhaustedMessage,
			StatusCode: http.StatusTooManyRequests,
			RetryAfter: resp.RetryAfter,
			Response:   resp.Body,
		}
	}
	return Classify(ParseEnvelope(resp.Body), resp.StatusCode)
}

// validationError wraps an input or decode failure as a Validation error
func validationError(err error) error {
	return &APIError{
		Kind:    KindValidation,
		Message: err.Error(),
		Err:     err,
	}
}

// transportError wraps failures that never produced a response envelope
func transportError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return &APIError{
		Kind:    KindGeneric,
		Message: err.Error(),
		Err:     err,
	}
}
