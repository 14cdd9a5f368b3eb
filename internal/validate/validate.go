// Package validate checks records against their validate:"..." struct tags
// and turns the failures into human-readable messages.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/campus-api/internal/types"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name, which is what clients send.
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// enum=<name> checks membership in types.Enums[name].
	if err := val.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		return slices.Contains(types.Enums[fl.Param()], fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return val
}

// Struct validates record. It returns nil when the record is valid, or one
// message per failing field otherwise. Fields named in skip are not
// reported (they already carry a conversion error).
func Struct(record any, skip ...string) []string {
	err := v.Struct(record)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if slices.Contains(skip, e.Field()) {
			continue
		}
		msgs = append(msgs, Message(e))
	}
	if len(msgs) == 0 {
		return nil
	}
	return msgs
}

// Message converts one validator.FieldError into a sentence.
func Message(e validator.FieldError) string {
	field := e.Field()
	isText := e.Kind() == reflect.String

	switch e.ActualTag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "min":
		if isText {
			return fmt.Sprintf("%q length must be at least %s characters long", field, e.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, e.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, e.Param())
		}
		return fmt.Sprintf("%q must be less than or equal to %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%q must be greater than or equal to %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%q must be less than or equal to %s", field, e.Param())
	case "enum":
		return fmt.Sprintf("%q must be one of [%s]", field, strings.Join(types.Enums[e.Param()], ", "))
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
