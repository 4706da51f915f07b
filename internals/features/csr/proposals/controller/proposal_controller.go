package controller

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"csr_backend/internals/features/csr/proposals/dto"
	"csr_backend/internals/features/csr/proposals/service"
	helper "csr_backend/internals/helpers"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type ProposalController struct {
	Service *service.ProposalService
}

func NewProposalController(svc *service.ProposalService) *ProposalController {
	return &ProposalController{Service: svc}
}

// GET /api/proposals
func (ctrl *ProposalController) List(c *fiber.Ctx) error {
	paging, paged := helper.ResolvePaging(c, defaultPerPage, maxPerPage)
	var pp *helper.Paging
	if paged {
		pp = &paging
	}

	list, total, err := ctrl.Service.List(c.UserContext(), pp)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	data := dto.FromModels(list, helper.FormatIDR)
	if !paged {
		return helper.JsonList(c, "Daftar proposal", data, nil)
	}
	pg := helper.BuildPagination(total, paging, len(data))
	return helper.JsonList(c, "Daftar proposal", data, &pg)
}

// GET /api/proposals/:id
func (ctrl *ProposalController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctrl.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail proposal", dto.FromModel(p, helper.FormatIDR))
}

// POST /api/proposals
func (ctrl *ProposalController) Create(c *fiber.Ctx) error {
	payload, files, err := parseProposalRequest(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p, err := ctrl.Service.Create(c.UserContext(), payload, files)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Proposal berhasil dibuat", dto.FromModel(p, helper.FormatIDR))
}

// PUT /api/proposals/:id
func (ctrl *ProposalController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	payload, files, err := parseProposalRequest(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p, err := ctrl.Service.Update(c.UserContext(), id, payload, files)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Proposal berhasil diperbarui", dto.FromModel(p, helper.FormatIDR))
}

// DELETE /api/proposals/:id
func (ctrl *ProposalController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Proposal berhasil dihapus", fiber.Map{"id": id})
}

// parseProposalRequest menerima multipart (part "metadata" JSON, atau field form lama),
// JSON biasa, atau form urlencoded.
func parseProposalRequest(c *fiber.Ctx) (dto.ProposalPayload, dto.ProposalFiles, error) {
	var (
		payload dto.ProposalPayload
		files   dto.ProposalFiles
	)
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))

	switch {
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			log.Printf("[PROPOSALS] multipart parse error: %v", err)
			return payload, files, fiber.NewError(fiber.StatusBadRequest, "Form multipart tidak valid")
		}
		files = dto.FilesFromForm(form)

		if meta := form.Value["metadata"]; len(meta) > 0 && strings.TrimSpace(meta[0]) != "" {
			if err := c.App().Config().JSONDecoder([]byte(meta[0]), &payload); err != nil {
				return payload, files, fiber.NewError(fiber.StatusBadRequest, "metadata bukan JSON yang valid")
			}
			return payload, files, nil
		}
		payload, err = dto.PayloadFromForm(form.Value)
		return payload, files, err

	case strings.HasPrefix(ct, fiber.MIMEApplicationForm):
		values := map[string][]string{}
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			values[string(k)] = append(values[string(k)], string(v))
		})
		payload, err := dto.PayloadFromForm(values)
		return payload, files, err

	default:
		if len(c.Body()) == 0 {
			return payload, files, nil
		}
		if err := c.App().Config().JSONDecoder(c.Body(), &payload); err != nil {
			return payload, files, fiber.NewError(fiber.StatusBadRequest, "Body JSON tidak valid")
		}
		return payload, files, nil
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	return uint(id), nil
}
