// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helper "csr_backend/internals/helpers"
)

// Locals yang diisi middleware ini.
const (
	LocUserID    = "user_id"
	LocUserEmail = "user_email"
	LocUserRole  = "userRole"
)

const expirySkew = 30 * time.Second

// AuthMiddleware verifikasi Bearer JWT (HS256) lalu simpan klaim ke Locals.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		if secret == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// 2) Parse & verifikasi signature; exp dicek manual dengan toleransi skew
		claims := jwt.MapClaims{}
		parser := jwt.Parser{
			SkipClaimsValidation: true,
			ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}); err != nil {
			log.Println("[AUTH] Gagal parse token:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid token")
		}

		// 3) Validasi exp
		if err := validateTokenExpiry(claims, expirySkew); err != nil {
			log.Println("[AUTH] Exp validation:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 4) Ambil user id
		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[AUTH] user id:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals(LocUserID, userID)

		storeBasicClaimsToLocals(c, claims)
		return c.Next()
	}
}
