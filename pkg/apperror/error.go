package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so callers can react without matching on strings.
type Kind int

const (
	KindInternal     Kind = iota
	KindNetwork           // transport failure; retryable by the user
	KindAuthRequired      // no credential present
	KindAuthFailed        // credential rejected by the backend
	KindValidation        // client-detected bad input, no network call made
	KindProtocol          // backend response shape mismatch
	KindDuplicate         // domain conflict (e.g. already tracking a job)
	KindNotFound
)

type AppError struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Network(err error) *AppError {
	return New(KindNetwork, http.StatusBadGateway, "Could not reach the job search backend", err)
}

func AuthRequired(message string) *AppError {
	return New(KindAuthRequired, http.StatusUnauthorized, message, nil)
}

func AuthFailed(message string) *AppError {
	return New(KindAuthFailed, http.StatusUnauthorized, message, nil)
}

func Validation(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

func Protocol(message string, err error) *AppError {
	return New(KindProtocol, http.StatusBadGateway, message, err)
}

func Duplicate(message string) *AppError {
	return New(KindDuplicate, http.StatusConflict, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, "Internal Server Error", err)
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
