package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"

	"csr_backend/internals/databases/testdb"
	categoryModel "csr_backend/internals/features/csr/categories/model"
	"csr_backend/internals/features/csr/programs/dto"
	"csr_backend/internals/features/csr/programs/model"
)

func strPtr(s string) *string { return &s }

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

func TestProgramCRUDWithCategory(t *testing.T) {
	db := testdb.New(t)
	svc := NewProgramService(db)
	ctx := context.Background()

	cat := categoryModel.Category{Name: "Lingkungan"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	p, err := svc.Create(ctx, dto.ProgramRequest{
		Title:      strPtr("Tanam 1000 Pohon"),
		CategoryID: &cat.ID,
		StartDate:  strPtr("2025-01-10"),
		EndDate:    strPtr("2025-02-10"),
		SourceLink: strPtr("https://example.org/pohon"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Status != model.ProgramPlanned {
		t.Fatalf("default status = %q", p.Status)
	}
	if p.CategoryName == nil || *p.CategoryName != "Lingkungan" {
		t.Fatalf("category_name = %v", p.CategoryName)
	}

	if _, err := svc.Create(ctx, dto.ProgramRequest{Title: strPtr("Tanpa Kategori")}); err != nil {
		t.Fatalf("create uncategorized: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Tanpa Kategori" || list[0].CategoryName != nil {
		t.Fatalf("list = %+v", list)
	}

	upd, err := svc.Update(ctx, p.ID, dto.ProgramRequest{Status: strPtr(model.ProgramOngoing)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.Status != model.ProgramOngoing || upd.Title != "Tanam 1000 Pohon" || upd.StartDate == nil {
		t.Fatalf("partial update lost fields: %+v", upd)
	}

	// kategori dihapus -> program tetap ada tanpa kategori
	if err := db.Delete(&cat).Error; err != nil {
		t.Fatalf("delete category: %v", err)
	}
	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CategoryID != nil || got.CategoryName != nil {
		t.Fatalf("category should be cleared: %+v", got)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); statusOf(err) != fiber.StatusNotFound {
		t.Fatalf("get deleted err = %v", err)
	}
}

func TestProgramValidation(t *testing.T) {
	svc := NewProgramService(testdb.New(t))
	ctx := context.Background()
	missing := uint(404)

	cases := []struct {
		name string
		req  dto.ProgramRequest
	}{
		{"no title", dto.ProgramRequest{Location: strPtr("Bandung")}},
		{"bad status", dto.ProgramRequest{Title: strPtr("X"), Status: strPtr("cancelled")}},
		{"bad date", dto.ProgramRequest{Title: strPtr("X"), StartDate: strPtr("10/01/2025")}},
		{"end before start", dto.ProgramRequest{Title: strPtr("X"), StartDate: strPtr("2025-02-01"), EndDate: strPtr("2025-01-01")}},
		{"unknown category", dto.ProgramRequest{Title: strPtr("X"), CategoryID: &missing}},
		{"bad source link", dto.ProgramRequest{Title: strPtr("X"), SourceLink: strPtr("bukan url")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.req); statusOf(err) != fiber.StatusBadRequest {
				t.Fatalf("err = %v, want 400", err)
			}
		})
	}

	if err := svc.Delete(ctx, 77); statusOf(err) != fiber.StatusNotFound {
		t.Fatalf("delete missing err = %v", err)
	}
}
