package httpx

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/makingtrips/makingtrips/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	var conflict *shared.Conflict
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &conflict):
		JSON(w, http.StatusConflict, ProblemDetail{
			Title:  "Conflict",
			Status: http.StatusConflict,
			Detail: conflict.Message,
			Code:   conflict.Code,
			Meta:   conflict.Meta,
		})
	case errors.As(err, &fieldErrs):
		RespondValidation(w, fieldErrs)
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrUnauthorized), errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, shared.ErrTooManyRequests):
		Problem(w, http.StatusTooManyRequests, "Too Many Requests", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// RespondValidation renders validator field errors as a 400 problem with a
// structured field list.
func RespondValidation(w http.ResponseWriter, errs validator.ValidationErrors) {
	fields := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: "failed on rule '" + fe.Tag() + "'",
		})
	}
	JSON(w, http.StatusBadRequest, ProblemDetail{
		Title:  "Validation Failed",
		Status: http.StatusBadRequest,
		Errors: fields,
	})
}
