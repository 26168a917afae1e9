package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Partial update fields are checked on their value; absent and null keys
	// validate as empty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[string]); ok && o.Value != nil {
			return *o.Value
		}
		return ""
	}, dto.Optional[string]{})

	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.RoleType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("opptype", func(fl validator.FieldLevel) bool {
		return models.OpportunityType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("appstatus", func(fl validator.FieldLevel) bool {
		return models.ApplicationStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Struct validates s and returns the first failure as a validation error.
// Missing required fields are reported before malformed ones.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" || fe.Tag() == "notblank" {
			return apperrors.NewValidationError(formatValidationError(fe))
		}
	}
	return apperrors.NewValidationError(formatValidationError(fieldErrs[0]))
}

// Email reports whether value is a syntactically valid address
func Email(value string) bool {
	return validate.Var(value, "required,email") == nil
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "role":
		return "Invalid role. Must be admin, alumni, or student"
	case "opptype":
		return "Invalid opportunity type"
	case "appstatus":
		return "Invalid status"
	case "min", "gte":
		return e.Field() + " must be at least " + e.Param()
	case "max", "lte":
		if e.Kind() == reflect.String {
			return e.Field() + " must be at most " + e.Param() + " characters"
		}
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
