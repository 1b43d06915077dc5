// Package errors provides the error taxonomy shared by the prediction
// pipeline and its front ends.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	ErrCodeArtifactMissing  ErrorCode = "ARTIFACT_MISSING"
	ErrCodeArtifactCorrupt  ErrorCode = "ARTIFACT_CORRUPT"
	ErrCodeScoringFailed    ErrorCode = "SCORING_FAILED"
	ErrCodeUnknownCategory  ErrorCode = "UNKNOWN_CATEGORY"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeMalformedRequest ErrorCode = "MALFORMED_REQUEST"
	ErrCodeRequestTooLarge  ErrorCode = "REQUEST_TOO_LARGE"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// Sentinels matched with errors.Is. Pipeline code wraps them with %w.
var (
	ErrArtifactMissing  = stderrors.New(string(ErrCodeArtifactMissing))
	ErrArtifactCorrupt  = stderrors.New(string(ErrCodeArtifactCorrupt))
	ErrScoring          = stderrors.New(string(ErrCodeScoringFailed))
	ErrUnknownCategory  = stderrors.New(string(ErrCodeUnknownCategory))
	ErrInvalidInput     = stderrors.New(string(ErrCodeInvalidInput))
	ErrMalformedRequest = stderrors.New(string(ErrCodeMalformedRequest))
	ErrRequestTooLarge  = stderrors.New(string(ErrCodeRequestTooLarge))
)

var sentinels = map[ErrorCode]error{
	ErrCodeArtifactMissing:  ErrArtifactMissing,
	ErrCodeArtifactCorrupt:  ErrArtifactCorrupt,
	ErrCodeScoringFailed:    ErrScoring,
	ErrCodeUnknownCategory:  ErrUnknownCategory,
	ErrCodeInvalidInput:     ErrInvalidInput,
	ErrCodeMalformedRequest: ErrMalformedRequest,
	ErrCodeRequestTooLarge:  ErrRequestTooLarge,
}

// StandardError is the structured form of an error as reported to clients.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the sentinel for the code so errors.Is works on a
// StandardError as well as on the wrapped pipeline error.
func (e *StandardError) Unwrap() error {
	return sentinels[e.Code]
}

func NewArtifactMissingError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeArtifactMissing,
		Message:   "Model not loaded properly",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewArtifactCorruptError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeArtifactCorrupt,
		Message:   "Model artifacts could not be read",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewScoringFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringFailed,
		Message:   "Prediction failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnknownCategoryError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownCategory,
		Message:   "Input contains a category the model was not trained on",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError carries per-field problems in Metadata["errors"].
func NewInvalidInputError(details string, fieldErrors interface{}) *StandardError {
	e := &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
	if fieldErrors != nil {
		e.Metadata = map[string]interface{}{"errors": fieldErrors}
	}
	return e
}

func NewMalformedRequestError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedRequest,
		Message:   "Request body is not valid JSON",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewRequestTooLargeError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestTooLarge,
		Message:   "Request body too large",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Normalize converts any error into a StandardError, classifying wrapped
// sentinels. Nothing in this service is retryable: every failure is
// deterministic for a given set of artifacts.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	switch {
	case stderrors.Is(err, ErrArtifactMissing):
		return NewArtifactMissingError(err.Error())
	case stderrors.Is(err, ErrArtifactCorrupt):
		return NewArtifactCorruptError(err.Error())
	case stderrors.Is(err, ErrScoring):
		return NewScoringFailedError(err.Error())
	case stderrors.Is(err, ErrUnknownCategory):
		return NewUnknownCategoryError(err.Error())
	case stderrors.Is(err, ErrInvalidInput):
		return NewInvalidInputError(err.Error(), nil)
	case stderrors.Is(err, ErrMalformedRequest):
		return NewMalformedRequestError(err)
	case stderrors.Is(err, ErrRequestTooLarge):
		return NewRequestTooLargeError(err.Error())
	default:
		return NewInternalError(err)
	}
}

// HTTPStatus maps an error code onto the status the service responds with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeArtifactMissing, ErrCodeArtifactCorrupt:
		return http.StatusServiceUnavailable
	case ErrCodeInvalidInput, ErrCodeUnknownCategory:
		return http.StatusUnprocessableEntity
	case ErrCodeMalformedRequest:
		return http.StatusBadRequest
	case ErrCodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory groups codes for log aggregation.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeArtifactMissing, ErrCodeArtifactCorrupt:
		return "ARTIFACT"
	case ErrCodeInvalidInput, ErrCodeMalformedRequest, ErrCodeRequestTooLarge, ErrCodeUnknownCategory:
		return "VALIDATION"
	case ErrCodeScoringFailed:
		return "INVARIANT"
	default:
		return "OTHER"
	}
}

// IsUnavailable reports whether err means the model cannot serve at all.
func IsUnavailable(err error) bool {
	return stderrors.Is(err, ErrArtifactMissing) || stderrors.Is(err, ErrArtifactCorrupt)
}
