package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

const msgInternal = "An unexpected error occurred"

// MapErrorToStatusCode maps service errors to HTTP status codes by kind.
// Unknown errors become 500 so internal types never leak.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPermission):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgInternal
	}

	var policy *domain.PasswordPolicyError
	switch {
	case errors.As(err, &policy):
		return policy.Error()

	case errors.Is(err, domain.ErrDuplicateAccount):
		return "Email already exists"
	case errors.Is(err, domain.ErrSamePassword):
		return "New password must differ from the current password"
	case errors.Is(err, domain.ErrInvalidRole):
		return "Invalid role"
	case errors.Is(err, domain.ErrSelfAssignment):
		return "The todo creator cannot be assigned as a manager"
	case errors.Is(err, domain.ErrManagerMismatch):
		return "Manager does not belong to this todo"
	case errors.Is(err, domain.ErrNotManager):
		return "Only managers of this todo may comment"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email format"
	case errors.Is(err, domain.ErrEmptyContent):
		return "Content cannot be empty"
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"

	case errors.Is(err, domain.ErrAccountNotFound):
		return "Account not found"
	case errors.Is(err, domain.ErrTargetAccountNotFound):
		return "Manager account not found"
	case errors.Is(err, domain.ErrTodoNotFound):
		return "Todo not found"
	case errors.Is(err, domain.ErrManagerNotFound):
		return "Manager not found"
	case errors.Is(err, domain.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, domain.ErrMissingToken):
		return "Missing authorization token"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Unauthorized"

	case errors.Is(err, domain.ErrNotCreator), errors.Is(err, domain.ErrInvalidCreator):
		return "Only the todo creator may manage its managers"
	case errors.Is(err, domain.ErrPermission):
		return "Forbidden"

	default:
		return msgInternal
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// message overrides the safe message for 4xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)

	userMessage := GetSafeErrorMessage(err)
	if message != "" && status < http.StatusInternalServerError {
		userMessage = message
	}

	var opts []shared.ResponseOption
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err, opts...)
}

// handleDecodeError responds to a body that could not be decoded.
func handleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	msg := "Invalid request format"
	if errors.Is(err, shared.ErrEmptyBody) {
		msg = "Request body is required"
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msg, err)
}

// handleValidationError responds to a request that failed struct validation.
func handleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// SanitizeValidationError turns validator output into a short message that
// names the first failing field without echoing its value.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fieldName(fe), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "field"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt", "gte":
		return "must be positive"
	default:
		return "validation failed"
	}
}
