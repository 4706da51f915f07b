package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"csr_backend/internals/constants"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		id, err := CurrentUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": id, "role": c.Locals(LocUserRole), "email": c.Locals(LocUserEmail)})
	})
	app.Delete("/admin", AuthMiddleware(testSecret),
		OnlyRoles(constants.RoleErrorAdmin("proposal"), constants.AdminOnly...),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"id":    float64(7),
		"email": "admin@csr.com",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestAuthMiddleware(t *testing.T) {
	app := newApp()

	if got := do(t, app, "GET", "/me", ""); got != fiber.StatusUnauthorized {
		t.Errorf("no token: status %d", got)
	}
	if got := do(t, app, "GET", "/me", "not-a-jwt"); got != fiber.StatusUnauthorized {
		t.Errorf("garbage token: status %d", got)
	}

	wrongKey := signToken(t, "other", jwt.SigningMethodHS256, validClaims(constants.RoleAdmin))
	if got := do(t, app, "GET", "/me", wrongKey); got != fiber.StatusUnauthorized {
		t.Errorf("wrong key: status %d", got)
	}

	hs512 := signToken(t, testSecret, jwt.SigningMethodHS512, validClaims(constants.RoleAdmin))
	if got := do(t, app, "GET", "/me", hs512); got != fiber.StatusUnauthorized {
		t.Errorf("unexpected alg accepted: status %d", got)
	}

	expired := validClaims(constants.RoleAdmin)
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	if got := do(t, app, "GET", "/me", signToken(t, testSecret, jwt.SigningMethodHS256, expired)); got != fiber.StatusUnauthorized {
		t.Errorf("expired: status %d", got)
	}

	// masih dalam toleransi skew
	skewed := validClaims(constants.RoleAdmin)
	skewed["exp"] = time.Now().Add(-10 * time.Second).Unix()
	if got := do(t, app, "GET", "/me", signToken(t, testSecret, jwt.SigningMethodHS256, skewed)); got != fiber.StatusOK {
		t.Errorf("within skew: status %d", got)
	}

	noID := validClaims(constants.RoleAdmin)
	delete(noID, "id")
	if got := do(t, app, "GET", "/me", signToken(t, testSecret, jwt.SigningMethodHS256, noID)); got != fiber.StatusUnauthorized {
		t.Errorf("missing id: status %d", got)
	}

	ok := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims(constants.RoleUser))
	if got := do(t, app, "GET", "/me", ok); got != fiber.StatusOK {
		t.Errorf("valid: status %d", got)
	}
}

func TestCookieFallback(t *testing.T) {
	app := newApp()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", "access_token="+signToken(t, testSecret, jwt.SigningMethodHS256, validClaims(constants.RoleUser)))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestOnlyRoles(t *testing.T) {
	app := newApp()

	user := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims(constants.RoleUser))
	if got := do(t, app, "DELETE", "/admin", user); got != fiber.StatusForbidden {
		t.Errorf("user on admin route: status %d", got)
	}

	admin := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims(constants.RoleAdmin))
	if got := do(t, app, "DELETE", "/admin", admin); got != fiber.StatusNoContent {
		t.Errorf("admin: status %d", got)
	}
}
