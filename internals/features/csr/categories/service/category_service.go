package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"csr_backend/internals/features/csr/categories/dto"
	"csr_backend/internals/features/csr/categories/model"
	helper "csr_backend/internals/helpers"
)

type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	var cat model.Category
	err := s.DB.WithContext(ctx).First(&cat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
	}
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &cat, nil
}

func (s *CategoryService) Create(ctx context.Context, req dto.CategoryRequest) (*model.Category, error) {
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return nil, helper.ValidationFailure(err)
	}

	var cat model.Category
	req.ApplyTo(&cat)
	if cat.Name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nama kategori wajib diisi")
	}

	if err := s.DB.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, translateWriteError(err, cat.Name)
	}
	log.Printf("[CATEGORIES][CREATE] id=%d name=%s", cat.ID, cat.Name)
	return &cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, req dto.CategoryRequest) (*model.Category, error) {
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return nil, helper.ValidationFailure(err)
	}

	cat, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(cat)
	if cat.Name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nama kategori wajib diisi")
	}

	err = s.DB.WithContext(ctx).Model(&model.Category{ID: id}).
		Select("name", "description").
		Updates(cat).Error
	if err != nil {
		return nil, translateWriteError(err, cat.Name)
	}
	return cat, nil
}

// Delete: program yang memakai kategori ini jadi tanpa kategori (ON DELETE SET NULL).
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete category %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
	}
	log.Printf("[CATEGORIES][DELETE] id=%d", id)
	return nil
}

func translateWriteError(err error, name string) error {
	low := strings.ToLower(err.Error())
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(low, "duplicate") || strings.Contains(low, "unique") {
		return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Kategori %q sudah ada", name))
	}
	log.Printf("[CATEGORIES] write error: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan kategori")
}
