package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	categoryModel "csr_backend/internals/features/csr/categories/model"
	"csr_backend/internals/features/csr/programs/dto"
	"csr_backend/internals/features/csr/programs/model"
	helper "csr_backend/internals/helpers"
)

type ProgramService struct {
	DB *gorm.DB
}

func NewProgramService(db *gorm.DB) *ProgramService {
	return &ProgramService{DB: db}
}

func (s *ProgramService) withCategory(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("csr_programs AS p").
		Select("p.*, c.name AS category_name").
		Joins("LEFT JOIN categories c ON c.id = p.category_id")
}

func (s *ProgramService) List(ctx context.Context) ([]model.ProgramWithCategory, error) {
	rows := []model.ProgramWithCategory{}
	if err := s.withCategory(ctx).Order("p.created_at DESC").Order("p.id DESC").Scan(&rows).Error; err != nil {
		log.Printf("[PROGRAMS][LIST] query error: %v", err)
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return rows, nil
}

func (s *ProgramService) Get(ctx context.Context, id uint) (*model.ProgramWithCategory, error) {
	var rows []model.ProgramWithCategory
	if err := s.withCategory(ctx).Where("p.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("get program %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Program tidak ditemukan")
	}
	return &rows[0], nil
}

func (s *ProgramService) Create(ctx context.Context, req dto.ProgramRequest) (*model.ProgramWithCategory, error) {
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return nil, helper.ValidationFailure(err)
	}

	p := model.CsrProgram{Status: model.ProgramPlanned}
	if err := req.ApplyTo(&p); err != nil {
		return nil, err
	}
	if err := s.check(ctx, &p); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		log.Printf("[PROGRAMS][CREATE] insert error: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan program")
	}
	log.Printf("[PROGRAMS][CREATE] id=%d title=%s", p.ID, p.Title)
	return s.Get(ctx, p.ID)
}

func (s *ProgramService) Update(ctx context.Context, id uint, req dto.ProgramRequest) (*model.ProgramWithCategory, error) {
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return nil, helper.ValidationFailure(err)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p := current.CsrProgram
	if err := req.ApplyTo(&p); err != nil {
		return nil, err
	}
	if err := s.check(ctx, &p); err != nil {
		return nil, err
	}

	res := s.DB.WithContext(ctx).Model(&model.CsrProgram{ID: id}).
		Select("*").Omit("id", "created_at").
		Updates(&p)
	if res.Error != nil {
		log.Printf("[PROGRAMS][UPDATE] id=%d error: %v", id, res.Error)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui program")
	}
	if res.RowsAffected == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Program tidak ditemukan")
	}
	return s.Get(ctx, id)
}

func (s *ProgramService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&model.CsrProgram{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete program %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Program tidak ditemukan")
	}
	log.Printf("[PROGRAMS][DELETE] id=%d", id)
	return nil
}

// check aturan setelah merge: judul wajib, tanggal berurutan, kategori ada.
func (s *ProgramService) check(ctx context.Context, p *model.CsrProgram) error {
	if p.Title == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Judul program wajib diisi")
	}
	if p.StartDate != nil && p.EndDate != nil && time.Time(*p.EndDate).Before(time.Time(*p.StartDate)) {
		return fiber.NewError(fiber.StatusBadRequest, "end_date tidak boleh sebelum start_date")
	}
	if p.CategoryID != nil {
		var cat categoryModel.Category
		err := s.DB.WithContext(ctx).Select("id").First(&cat, *p.CategoryID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Kategori %d tidak ditemukan", *p.CategoryID))
		}
		if err != nil {
			return fmt.Errorf("check category: %w", err)
		}
	}
	return nil
}
