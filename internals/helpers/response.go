package helper

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validate dipakai bersama oleh semua DTO; nama field diambil dari tag json.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = fld.Tag.Get("form")
		}
		return name
	})
	return v
}

// ValidationMessages memetakan validator.ValidationErrors ke map field -> pesan.
func ValidationMessages(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = describeTag(fe)
	}
	return out
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "email":
		return "format email tidak valid"
	case "max":
		return fmt.Sprintf("maksimal %s karakter", fe.Param())
	case "min":
		return fmt.Sprintf("minimal %s karakter", fe.Param())
	case "oneof":
		return fmt.Sprintf("harus salah satu dari: %s", fe.Param())
	case "url":
		return "format URL tidak valid"
	default:
		return fe.Tag()
	}
}

// ✅ Khusus error validasi (validator.v10)
func ValidationError(c *fiber.Ctx, err error) error {
	msgs := ValidationMessages(err)
	if msgs == nil {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}

	fields := make([]string, 0, len(msgs))
	for f := range msgs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return JsonValidationError(c, "Validasi gagal: "+strings.Join(fields, ", "), msgs)
}

// ValidationFailure versi service dari ValidationError: *fiber.Error 400
// dengan daftar field yang gagal, supaya bisa dikembalikan lewat FromFiberError.
func ValidationFailure(err error) error {
	msgs := ValidationMessages(err)
	if msgs == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}

	fields := make([]string, 0, len(msgs))
	for f := range msgs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+msgs[f])
	}
	return fiber.NewError(fiber.StatusBadRequest, "Validasi gagal: "+strings.Join(parts, "; "))
}
