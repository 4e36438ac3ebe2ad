package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"genset-rental-backend/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Get returns the shared validator. Field names in errors follow json tags
// and decimal.Decimal values compare numerically in gt/gte/lt/lte tags.
// The money tag limits a decimal to two fractional digits.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		_ = validate.RegisterValidation("money", moneyScale)
	})
	return validate
}

// moneyScale reads the decimal back from its parent struct because the custom
// type func above hands validators a float64.
func moneyScale(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	for parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return true
	}
	field := parent.FieldByName(fl.StructFieldName())
	if !field.IsValid() {
		return true
	}
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return true
	}
	return d.Equal(d.Round(2))
}

// Struct validates s and converts failures into a domain validation error.
func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("invalid request: %v", err)
	}

	details := make([]domain.FieldError, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, domain.FieldError{
			Field:   fieldPath(e),
			Message: message(e),
		})
	}
	return domain.NewFieldValidationError("Request validation failed", details)
}

// fieldPath drops the top-level struct name from the namespace,
// e.g. "CreatePOInput.items[0].quantity" becomes "items[0].quantity".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "datetime":
		return "Must be a date in " + e.Param() + " format"
	case "min":
		if e.Kind() == reflect.Slice {
			return "Must contain at least " + e.Param() + " entries"
		}
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "money":
		return "Must have at most 2 decimal places"
	default:
		return "Invalid value"
	}
}
