package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/favorites-service/pkg/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseAndValidate decodes a request body into payload and runs the schema
// checks declared on its fields. Unknown fields, malformed JSON, and failed
// constraints are all reported as a validation failure.
func ParseAndValidate(body []byte, payload any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(payload); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]any{"payload": err.Error()})
	}

	if err := validate.Struct(payload); err != nil {
		return apperrors.NewValidationError("invalid request body", toDetails(err))
	}
	return nil
}

func toDetails(err error) map[string]any {
	var verrs validator.ValidationErrors
	details := map[string]any{}
	if !errors.As(err, &verrs) {
		details["payload"] = err.Error()
		return details
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details[fe.Field()] = "is required"
		case "email":
			details[fe.Field()] = "must be a valid email address"
		case "min":
			details[fe.Field()] = "must be at least " + fe.Param() + " characters"
		default:
			details[fe.Field()] = "failed " + fe.Tag() + " validation"
		}
	}
	return details
}
