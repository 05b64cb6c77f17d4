package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NewValidator: validator dengan nama field diambil dari tag json.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationFieldErrors mengubah validator.ValidationErrors → map field → daftar tag.
func ValidationFieldErrors(err error) map[string][]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		msg := fe.Tag()
		if p := fe.Param(); p != "" {
			msg += "=" + p
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// ValidationError: 422 kalau error dari validator, selain itu 400.
func ValidationError(c *fiber.Ctx, err error) error {
	if fields := ValidationFieldErrors(err); fields != nil {
		return JsonValidationError(c, fields)
	}
	return JsonError(c, fiber.StatusBadRequest, err.Error())
}
