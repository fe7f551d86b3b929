package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookcatalog/internal/shared/core"
)

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeOptimisticLock = "OPTIMISTIC_LOCK_ERROR"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []Error     `json:"errors,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, errs ...Error) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Errors:  errs,
	})
}

// ValidationFailed reports one error entry per violation, formatted "field: message".
func ValidationFailed(c *gin.Context, violations []core.Violation) {
	errs := make([]Error, len(violations))
	for i, v := range violations {
		errs[i] = Error{Code: CodeValidation, Message: v.String()}
	}
	ErrorResponse(c, http.StatusBadRequest, errs...)
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, Error{Code: CodeValidation, Message: message})
}

// InvalidBody rejects a request body that could not be decoded. The decoder
// detail is logged, never echoed.
func InvalidBody(c *gin.Context, err error) {
	log.Warn().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("Invalid request body")
	BadRequest(c, "body: invalid JSON payload")
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, Error{Code: CodeNotFound, Message: message})
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, Error{Code: CodeOptimisticLock, Message: message})
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, Error{Code: CodeInternal, Message: message})
}

// HandleError maps the error taxonomy to HTTP:
//   - *core.ValidationError     → 400
//   - *core.NotFoundError       → 404
//   - *core.OptimisticLockError → 409
//   - anything else             → 500 (logged, details hidden)
func HandleError(c *gin.Context, err error) {
	var (
		validationErr *core.ValidationError
		notFoundErr   *core.NotFoundError
		lockErr       *core.OptimisticLockError
	)

	switch {
	case errors.As(err, &validationErr):
		ValidationFailed(c, validationErr.Violations)
	case errors.As(err, &notFoundErr):
		NotFound(c, notFoundErr.Error())
	case errors.As(err, &lockErr):
		Conflict(c, lockErr.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Bool("data_integrity", errors.Is(err, core.ErrDataIntegrity)).
			Msg("Unhandled error")
		InternalServerError(c, "Internal server error")
	}
}
