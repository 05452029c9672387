package interest

import (
	"errors"

	apperrors "github.com/akeren/interest-waitlist/pkg/errors"
	"github.com/akeren/interest-waitlist/pkg/validation"
)

// Sentinel errors for the interest domain. Every AppError returned by this
// package wraps exactly one of them.
var (
	ErrValidationFailed       = errors.New("validation failed")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrStoreUnavailable       = errors.New("store unavailable")
	ErrMalformedRequest       = errors.New("malformed request")
	ErrSubmissionNotFound     = errors.New("submission not found")
)

// Client-facing messages.
const (
	MsgSubmitted              = "Interest submitted successfully"
	MsgValidationFailed       = "Validation failed"
	MsgInvalidRequestBody     = "Invalid request body"
	MsgInvalidRequestPayload  = "Invalid request payload"
	MsgEmailAlreadyRegistered = "Email already registered"
	MsgCheckEmailFailed       = "Failed to check email existence"
	MsgSubmitFailed           = "Failed to submit interest"
	MsgCountFailed            = "Failed to get interest count"
	MsgListFailed             = "Failed to list submissions"
	MsgDeleteFailed           = "Failed to delete submission"
	MsgSubmissionNotFound     = "Submission not found"
)

func newValidationFailedError(fieldErrors []validation.FieldError) *apperrors.AppError {
	details := make([]apperrors.ValidationErrorResponse, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		details = append(details, apperrors.ValidationErrorResponse{Field: fe.Field, Message: fe.Message})
	}

	return apperrors.NewValidationError(MsgValidationFailed, details, ErrValidationFailed)
}

func newMalformedRequestError(cause error) *apperrors.AppError {
	return apperrors.NewInvalidRequestError(MsgInvalidRequestBody, errors.Join(ErrMalformedRequest, cause))
}

func newDuplicateEmailError(cause error) *apperrors.AppError {
	return apperrors.NewConflictError(MsgEmailAlreadyRegistered, errors.Join(ErrEmailAlreadyRegistered, cause))
}

func newStoreError(message string, cause error) *apperrors.AppError {
	return apperrors.NewDatabaseError(message, errors.Join(ErrStoreUnavailable, cause))
}

func newNotFoundError(cause error) *apperrors.AppError {
	return apperrors.NewNotFoundError(MsgSubmissionNotFound, errors.Join(ErrSubmissionNotFound, cause))
}
