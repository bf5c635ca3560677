package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"

	"github.com/nhle/dashboard/internal/failure"
)

var validate *val.Validate

var messages = map[string]string{
	"required": "{field} is required",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be at most {param}",
	"min":      "{field} must be at least {param}",
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// Report JSON field names so messages match what API clients send.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Decode reads JSON from r into data and validates it.
func Decode[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("decoding request body: %w", err))
	}

	return Struct(data)
}

// Struct validates data against its `validate` tags. Violations are returned
// as a 400 failure describing the first offending field.
func Struct(data any) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			msg := messages[valErr.Tag()]
			if msg != "" {
				msg = strings.ReplaceAll(msg, "{field}", valErr.Field())
				msg = strings.ReplaceAll(msg, "{param}", valErr.Param())

				return msg
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}
