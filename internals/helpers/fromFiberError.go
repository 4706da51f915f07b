package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error dari service (biasanya *fiber.Error)
// menjadi response JSON konsisten via JsonError.
// Jika bukan *fiber.Error, fallback ke 500 tanpa membocorkan detail.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

// ErrorHandler dipasang di fiber.Config agar error yang lolos dari handler
// tetap keluar dengan format ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
