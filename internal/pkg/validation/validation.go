// Package validation registers application tags on gin's validator and turns
// validator errors into short field messages.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// EnumFunc reports whether a string field holds an accepted value.
type EnumFunc func(string) bool

// RegisterEnums installs one tag per entry on gin's default validator.
// Empty values pass so that tags compose with omitempty and required.
func RegisterEnums(tags map[string]EnumFunc) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return registerEnums(v, tags)
}

func registerEnums(v *validator.Validate, tags map[string]EnumFunc) error {
	for tag, valid := range tags {
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || valid(s)
		})
		if err != nil {
			return fmt.Errorf("register %q validator: %w", tag, err)
		}
	}
	return nil
}

// Describe renders err as "field: rule" pairs when it comes from the validator,
// and falls back to err.Error() otherwise.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "max", "oneof", "datetime":
		return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	case "uuid":
		return field + " must be a UUID"
	default:
		return fmt.Sprintf("%s is not a valid %s", field, fe.Tag())
	}
}
