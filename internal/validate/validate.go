// Package validate parses and validates request payloads at the HTTP
// boundary so services only ever see well-formed typed input.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
)

var v = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New(validator.WithRequiredStructEnabled())

	// Report field names by their json tag so error keys match the
	// request payload.
	vd.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return vd
}

// ParseBody decodes the JSON body into dest and validates it, returning a
// field-keyed ValidationFailed error on any problem.
func ParseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return apperrors.WithField(apperrors.KindValidation, "body", "Request body is malformed.")
	}
	return Struct(dest)
}

func Struct(dest interface{}) error {
	err := v.Struct(dest)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.New(apperrors.KindValidation, "Invalid request payload.")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &apperrors.Error{
		Kind:    apperrors.KindValidation,
		Message: "Invalid request payload.",
		Fields:  fields,
	}
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
