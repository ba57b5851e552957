package apperrors

import (
	"errors"
	"net/http"

	"sprintdesk/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindForbidden  Kind = "FORBIDDEN"
	KindConflict   Kind = "CONFLICT"
	KindValidation Kind = "VALIDATION_ERROR"
	KindInternal   Kind = "INTERNAL_ERROR"
)

// AppError carries a domain error kind so controllers can map it to an HTTP
// status without matching on message strings.
type AppError struct {
	Kind    Kind   `json:"code"`
	Message string `json:"error"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func Internal(message string) *AppError {
	return &AppError{Kind: KindInternal, Message: message}
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}

	return false
}

func statusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the error as JSON. Domain errors keep their specific reason;
// anything else is logged server-side and surfaced as a generic message.
func Respond(ctx *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		ctx.JSON(statusFor(appErr.Kind), gin.H{"error": appErr.Message, "code": string(appErr.Kind)})
		return
	}

	logger.GetLogger().Error("internal error", "error", err, "path", ctx.FullPath())
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": string(KindInternal)})
}
