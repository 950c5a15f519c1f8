package common

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// BindAndValidate fills payload from a decoded JSON body section and runs the
// struct's validate tags. Tag violations come back as the same AppError shape
// the schema validator produces, so clients see one failure format everywhere.
func BindAndValidate(body map[string]any, payload interface{}) *AppError {
	raw, err := json.Marshal(body)
	if err != nil {
		return NewAppError(400, "Invalid request body", err)
	}
	if err := json.Unmarshal(raw, payload); err != nil {
		return NewAppError(400, "Invalid request body", err)
	}

	if err := validate.Struct(payload); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return NewInternalError(err)
		}

		failures := make([]ValidationFailure, 0, len(validationErrors))
		for _, fe := range validationErrors {
			failures = append(failures, ValidationFailure{
				Field:   strings.ToLower(fe.Field()),
				Section: "body",
				Rule:    fe.Tag(),
				Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			})
		}
		return NewValidationError(failures)
	}

	return nil
}
