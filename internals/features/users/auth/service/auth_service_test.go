package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"csr_backend/internals/constants"
	"csr_backend/internals/databases/testdb"
	"csr_backend/internals/features/users/auth/dto"
	"csr_backend/internals/features/users/user/model"
)

const testSecret = "auth-test-secret"

func newService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := testdb.New(t)
	svc := NewAuthService(db, testSecret, 0, "client-id")
	svc.Now = func() time.Time { return time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC) }
	return svc, db
}

func createUser(t *testing.T, db *gorm.DB, email, password, role string) *model.UserModel {
	t.Helper()
	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &model.UserModel{Email: email, Password: hashed, Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

func TestLoginAdmin(t *testing.T) {
	svc, db := newService(t)
	admin := createUser(t, db, "admin@csr.com", "rahasia123", constants.RoleAdmin)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: " Admin@CSR.com ", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.ID != admin.ID || resp.User.Role != constants.RoleAdmin {
		t.Fatalf("user = %+v", resp.User)
	}
	if !resp.ExpiresAt.Equal(svc.Now().Add(24 * time.Hour)) {
		t.Fatalf("expires_at = %v", resp.ExpiresAt)
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["email"] != "admin@csr.com" || claims["role"] != constants.RoleAdmin {
		t.Fatalf("claims = %v", claims)
	}
	if id, _ := claims["id"].(float64); uint(id) != admin.ID {
		t.Fatalf("id claim = %v", claims["id"])
	}
	if _, ok := claims["iat"]; !ok {
		t.Fatal("iat claim missing")
	}
}

func TestLoginRejections(t *testing.T) {
	svc, db := newService(t)
	createUser(t, db, "admin@csr.com", "rahasia123", constants.RoleAdmin)
	createUser(t, db, "user@csr.com", "rahasia123", constants.RoleUser)

	cases := []struct {
		name   string
		in     dto.LoginRequest
		status int
	}{
		{"wrong password", dto.LoginRequest{Email: "admin@csr.com", Password: "salah"}, fiber.StatusUnauthorized},
		{"unknown email", dto.LoginRequest{Email: "nobody@csr.com", Password: "rahasia123"}, fiber.StatusUnauthorized},
		{"non admin", dto.LoginRequest{Email: "user@csr.com", Password: "rahasia123"}, fiber.StatusForbidden},
		{"missing password", dto.LoginRequest{Email: "admin@csr.com"}, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.in)
			if statusOf(err) != tc.status {
				t.Fatalf("err = %v, want %d", err, tc.status)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	svc, db := newService(t)

	u, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "Baru@csr.com", Password: "rahasia123", Name: "Baru"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != constants.RoleUser || u.Email != "baru@csr.com" {
		t.Fatalf("user = %+v", u)
	}

	var stored model.UserModel
	db.First(&stored, u.ID)
	if stored.Password == "rahasia123" || CheckPasswordHash(stored.Password, "rahasia123") != nil {
		t.Fatal("password must be stored as bcrypt hash")
	}

	_, err = svc.Register(context.Background(), dto.RegisterRequest{Email: "baru@csr.com", Password: "lainnya123"})
	if statusOf(err) != fiber.StatusBadRequest {
		t.Fatalf("duplicate err = %v, want 400", err)
	}

	_, err = svc.Register(context.Background(), dto.RegisterRequest{Email: "bukan-email", Password: "rahasia123"})
	if statusOf(err) != fiber.StatusBadRequest {
		t.Fatalf("invalid email err = %v, want 400", err)
	}
}

func TestLoginGoogle(t *testing.T) {
	svc, db := newService(t)
	createUser(t, db, "admin@csr.com", "rahasia123", constants.RoleAdmin)
	createUser(t, db, "user@csr.com", "rahasia123", constants.RoleUser)

	svc.VerifyGoogle = func(idToken, clientID string) (*GoogleIdentity, error) {
		if clientID != "client-id" {
			t.Fatalf("client id = %q", clientID)
		}
		switch idToken {
		case "admin":
			return &GoogleIdentity{Email: "admin@csr.com", Sub: "1"}, nil
		case "user":
			return &GoogleIdentity{Email: "user@csr.com", Sub: "2"}, nil
		case "stranger":
			return &GoogleIdentity{Email: "x@csr.com", Sub: "3"}, nil
		}
		return nil, errors.New("bad token")
	}

	if resp, err := svc.LoginGoogle(context.Background(), dto.GoogleLoginRequest{IDToken: "admin"}); err != nil || resp.Token == "" {
		t.Fatalf("admin google login: %v", err)
	}
	checks := map[string]int{
		"user":     fiber.StatusForbidden,
		"stranger": fiber.StatusNotFound,
		"garbage":  fiber.StatusUnauthorized,
	}
	for tok, want := range checks {
		if _, err := svc.LoginGoogle(context.Background(), dto.GoogleLoginRequest{IDToken: tok}); statusOf(err) != want {
			t.Errorf("%s: err = %v, want %d", tok, err, want)
		}
	}
}

func TestMeNotFound(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.Me(context.Background(), 99); statusOf(err) != fiber.StatusNotFound {
		t.Fatalf("err = %v", err)
	}
}
