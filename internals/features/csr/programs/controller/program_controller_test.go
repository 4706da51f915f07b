package controller_test

import (
	"encoding/json"
	"fmt"
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
	categoryModel "csr_backend/internals/features/csr/categories/model"
	"csr_backend/internals/features/csr/programs/route"
	helper "csr_backend/internals/helpers"
)

const secret = "program-test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type program struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Status       string  `json:"status"`
	CategoryID   *uint   `json:"category_id"`
	CategoryName *string `json:"category_name"`
	Location     *string `json:"location"`
	StartDate    *string `json:"start_date"`
}

func newApp(t *testing.T) (*fiber.App, uint) {
	t.Helper()
	db := testdb.New(t)
	cat := categoryModel.Category{Name: "Pendidikan"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	route.ProgramRoutes(app.Group("/api"), db, &configs.Config{JWTSecret: secret})
	return app, cat.ID
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

func TestProgramHTTPCrud(t *testing.T) {
	app, catID := newApp(t)
	admin := token(t, "admin")

	body := fmt.Sprintf(`{"title":"Beasiswa Pendidikan","category_id":%d,"location":"Jakarta","start_date":"2025-02-01","end_date":"2025-12-31"}`, catID)
	status, env := call(t, app, http.MethodPost, "/api/programs", body, admin)
	if status != fiber.StatusCreated {
		t.Fatalf("create = %d %s", status, env.Message)
	}
	var created program
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != "planned" {
		t.Errorf("default status = %q", created.Status)
	}
	if created.CategoryName == nil || *created.CategoryName != "Pendidikan" {
		t.Errorf("category_name = %v", created.CategoryName)
	}
	if created.StartDate == nil || !strings.HasPrefix(*created.StartDate, "2025-02-01") {
		t.Errorf("start_date = %v", created.StartDate)
	}

	url := fmt.Sprintf("/api/programs/%d", created.ID)
	status, env = call(t, app, http.MethodPut, url, `{"status":"ongoing"}`, admin)
	var updated program
	if status != fiber.StatusOK || json.Unmarshal(env.Data, &updated) != nil {
		t.Fatalf("update = %d %s", status, env.Message)
	}
	if updated.Status != "ongoing" || updated.Title != "Beasiswa Pendidikan" || updated.Location == nil {
		t.Fatalf("partial update lost fields: %+v", updated)
	}

	status, env = call(t, app, http.MethodGet, "/api/programs", "", "")
	var list []program
	if status != fiber.StatusOK || json.Unmarshal(env.Data, &list) != nil || len(list) != 1 {
		t.Fatalf("list = %d %s", status, env.Data)
	}

	if status, _ := call(t, app, http.MethodDelete, url, "", admin); status != fiber.StatusOK {
		t.Fatalf("delete = %d", status)
	}
	if status, _ := call(t, app, http.MethodGet, url, "", ""); status != fiber.StatusNotFound {
		t.Fatalf("get after delete = %d", status)
	}
	if status, _ := call(t, app, http.MethodDelete, url, "", admin); status != fiber.StatusNotFound {
		t.Fatalf("delete missing = %d", status)
	}
}

func TestProgramHTTPValidation(t *testing.T) {
	app, _ := newApp(t)
	admin := token(t, "admin")

	cases := map[string]string{
		"missing title":    `{"location":"Bekasi"}`,
		"bad status":       `{"title":"X","status":"selesai"}`,
		"end before start": `{"title":"X","start_date":"2025-03-01","end_date":"2025-01-01"}`,
		"bad date":         `{"title":"X","start_date":"01-03-2025"}`,
		"unknown category": `{"title":"X","category_id":999}`,
		"bad source link":  `{"title":"X","source_link":"bukan url"}`,
	}
	for name, body := range cases {
		if status, env := call(t, app, http.MethodPost, "/api/programs", body, admin); status != fiber.StatusBadRequest {
			t.Errorf("%s: status = %d (%s)", name, status, env.Message)
		}
	}

	if status, _ := call(t, app, http.MethodPost, "/api/programs", `{"title":"X"}`, token(t, "user")); status != fiber.StatusForbidden {
		t.Errorf("user role = %d", status)
	}
}
