// Package validation checks request structs and converts failures into
// problem+json field errors named the way clients send them.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/pkg/problem"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Field errors use the json or query name instead of the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return toSnakeCase(f.Name)
	})

	_ = v.RegisterValidation("forecastmethod", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseForecastMethod(fl.Field().String(), domain.ForecastMethodLeastSquares)
		return err == nil
	})
	return v
}

// Validate returns one field error per failed rule, or nil.
func Validate(s any) []problem.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []problem.FieldError{{Field: "body", Message: "is invalid"}}
	}

	fieldErrors := make([]problem.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return fieldErrors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "forecastmethod":
		return "must be one of: " + string(domain.ForecastMethodTwoPoint) + " " + string(domain.ForecastMethodLeastSquares)
	default:
		return "is invalid"
	}
}

// toSnakeCase keeps acronyms together: TraceID -> trace_id.
func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
