package handler

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Besides the built-in tags it understands "objectid" and "category".
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return slices.Contains(domain.ProductCategories, fl.Field().String())
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Schema failures are
// returned as *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			violations := make([]domain.FieldViolation, 0, len(ve))
			for _, fe := range ve {
				violations = append(violations, domain.FieldViolation{
					Field:   fe.Field(),
					Message: fieldError(fe),
				})
			}
			return &domain.ValidationError{Violations: violations}
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "objectid":
		return field + " must be a valid mongo id"
	case "category":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(domain.ProductCategories, " "))
	case "url":
		return field + " must be a valid url"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
