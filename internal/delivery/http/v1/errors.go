package v1

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/services"
)

const (
	codeValidationError = "VALIDATION_ERROR"
	codeEntityNotFound  = "ENTITY_NOT_FOUND"
	codeConflict        = "CONFLICT"
	codeNotFound        = "NOT_FOUND"
	codeNotReady        = "NOT_READY"
	codeInternalError   = "INTERNAL_ERROR"
)

const (
	msgValidationFailed    = "Validation failed"
	msgInvalidRequestBody  = "Invalid request body"
	msgNotFound            = "Not found"
	msgInternalServerError = "Internal server error"
)

type apiError struct {
	Status  int                 `json:"-"`
	Message string              `json:"error"`
	Code    string              `json:"code"`
	Details map[string][]string `json:"details,omitempty"`
}

func newAPIError(status int, code, message string) apiError {
	return apiError{
		Status:  status,
		Message: message,
		Code:    code,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Status, err)
}

func newInternalError() apiError {
	return newAPIError(http.StatusInternalServerError, codeInternalError, msgInternalServerError)
}

func newValidationError(message string, details map[string][]string) apiError {
	err := newAPIError(http.StatusBadRequest, codeValidationError, message)
	err.Details = details
	return err
}

// newBindingError converts a failed ShouldBind* call. Validator failures keep
// their per-field details, anything else is a malformed request.
func newBindingError(err error) apiError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = append(details[fe.Field()], fieldErrorMessage(fe))
		}
		return newValidationError(msgValidationFailed, details)
	}
	return newValidationError(msgInvalidRequestBody, nil)
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be %s characters or fewer", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}

// handleServiceError writes the response for an error returned by a service.
func (h *handlerImpl) handleServiceError(c *gin.Context, err error) {
	var (
		validationErr *models.ValidationError
		notFoundErr   *services.EntityNotFoundError
		conflictErr   *services.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		abort(c, newValidationError(validationErr.Message, validationErr.Details))
	case errors.As(err, &notFoundErr):
		abort(c, newAPIError(http.StatusNotFound, codeEntityNotFound, notFoundErr.Error()))
	case errors.As(err, &conflictErr):
		abort(c, newAPIError(http.StatusConflict, codeConflict, conflictErr.Error()))
	default:
		h.logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
		abort(c, newInternalError())
	}
}

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "form", "uri"} {
			name, _, _ := strings.Cut(f.Tag.Get(key), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
}
