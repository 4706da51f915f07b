package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"csr_backend/internals/features/csr/categories/dto"
	"csr_backend/internals/features/csr/categories/service"
	helper "csr_backend/internals/helpers"
)

type CategoryController struct {
	Service *service.CategoryService
}

func NewCategoryController(svc *service.CategoryService) *CategoryController {
	return &CategoryController{Service: svc}
}

func (ctrl *CategoryController) List(c *fiber.Ctx) error {
	list, err := ctrl.Service.List(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Daftar kategori", list, nil)
}

func (ctrl *CategoryController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	cat, err := ctrl.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail kategori", cat)
}

func (ctrl *CategoryController) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	cat, err := ctrl.Service.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Kategori berhasil dibuat", cat)
}

func (ctrl *CategoryController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	cat, err := ctrl.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Kategori berhasil diperbarui", cat)
}

func (ctrl *CategoryController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Kategori berhasil dihapus", fiber.Map{"id": id})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	return uint(id), nil
}
