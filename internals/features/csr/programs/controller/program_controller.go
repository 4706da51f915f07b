package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"csr_backend/internals/features/csr/programs/dto"
	"csr_backend/internals/features/csr/programs/service"
	helper "csr_backend/internals/helpers"
)

type ProgramController struct {
	Service *service.ProgramService
}

func NewProgramController(svc *service.ProgramService) *ProgramController {
	return &ProgramController{Service: svc}
}

// GET /api/programs
func (ctrl *ProgramController) List(c *fiber.Ctx) error {
	list, err := ctrl.Service.List(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Daftar program", list, nil)
}

// GET /api/programs/:id
func (ctrl *ProgramController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctrl.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail program", p)
}

// POST /api/programs
func (ctrl *ProgramController) Create(c *fiber.Ctx) error {
	var req dto.ProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	p, err := ctrl.Service.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Program berhasil dibuat", p)
}

// PUT /api/programs/:id
func (ctrl *ProgramController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	p, err := ctrl.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Program berhasil diperbarui", p)
}

// DELETE /api/programs/:id
func (ctrl *ProgramController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Program berhasil dihapus", fiber.Map{"id": id})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	return uint(id), nil
}
