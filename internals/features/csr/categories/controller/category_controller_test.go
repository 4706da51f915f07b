package controller_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"csr_backend/internals/configs"
	"csr_backend/internals/databases/testdb"
	"csr_backend/internals/features/csr/categories/route"
	helper "csr_backend/internals/helpers"
)

const secret = "category-test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	route.CategoryRoutes(app.Group("/api"), testdb.New(t), &configs.Config{JWTSecret: secret})
	return app
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": 1, "email": "admin@csr.com", "role": role,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func call(t *testing.T, app *fiber.App, method, url, body, tok string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return resp.StatusCode, env
}

type category struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func TestCategoryHTTPCrud(t *testing.T) {
	app := newApp(t)
	admin := token(t, "admin")

	status, env := call(t, app, http.MethodPost, "/api/categories", `{"name":"Lingkungan","description":"Hijau"}`, admin)
	if status != fiber.StatusCreated {
		t.Fatalf("create = %d %s", status, env.Message)
	}
	var created category
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == 0 {
		t.Fatalf("created = %s", env.Data)
	}
	call(t, app, http.MethodPost, "/api/categories", `{"name":"Ekonomi"}`, admin)

	if status, _ := call(t, app, http.MethodPost, "/api/categories", `{"name":"Lingkungan"}`, admin); status != fiber.StatusConflict {
		t.Errorf("duplicate = %d, want 409", status)
	}
	if status, _ := call(t, app, http.MethodPost, "/api/categories", `{"name":"  "}`, admin); status != fiber.StatusBadRequest {
		t.Errorf("blank name = %d, want 400", status)
	}

	status, env = call(t, app, http.MethodGet, "/api/categories", "", "")
	var list []category
	if status != fiber.StatusOK || json.Unmarshal(env.Data, &list) != nil {
		t.Fatalf("list = %d %s", status, env.Data)
	}
	if len(list) != 2 || list[0].Name != "Ekonomi" || list[1].Name != "Lingkungan" {
		t.Fatalf("list not sorted by name: %+v", list)
	}

	id := "/api/categories/" + jsonID(created.ID)
	status, env = call(t, app, http.MethodPut, id, `{"description":"Lingkungan hidup"}`, admin)
	var updated category
	if status != fiber.StatusOK || json.Unmarshal(env.Data, &updated) != nil {
		t.Fatalf("update = %d %s", status, env.Message)
	}
	if updated.Name != "Lingkungan" || updated.Description == nil || *updated.Description != "Lingkungan hidup" {
		t.Fatalf("partial update = %+v", updated)
	}

	if status, _ := call(t, app, http.MethodDelete, id, "", admin); status != fiber.StatusOK {
		t.Fatalf("delete = %d", status)
	}
	if status, _ := call(t, app, http.MethodGet, id, "", ""); status != fiber.StatusNotFound {
		t.Fatalf("get after delete = %d", status)
	}
	if status, _ := call(t, app, http.MethodGet, "/api/categories/abc", "", ""); status != fiber.StatusBadRequest {
		t.Fatalf("bad id = %d", status)
	}
}

func TestCategoryWritesNeedAdmin(t *testing.T) {
	app := newApp(t)
	if status, _ := call(t, app, http.MethodPost, "/api/categories", `{"name":"X"}`, ""); status != fiber.StatusUnauthorized {
		t.Errorf("no token = %d", status)
	}
	if status, _ := call(t, app, http.MethodPost, "/api/categories", `{"name":"X"}`, token(t, "user")); status != fiber.StatusForbidden {
		t.Errorf("user = %d", status)
	}
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
