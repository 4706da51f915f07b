package controller

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"csr_backend/internals/features/csr/uploads/service"
	helper "csr_backend/internals/helpers"
)

// Nama field file: "image" (alias "file").
var imageFields = []string{"image", "file"}

type UploadController struct {
	Service *service.ImageUploadService
}

func NewUploadController(svc *service.ImageUploadService) *UploadController {
	return &UploadController{Service: svc}
}

// POST /api/upload
func (ctrl *UploadController) UploadImage(c *fiber.Ctx) error {
	var fh *multipart.FileHeader
	for _, field := range imageFields {
		if f, err := c.FormFile(field); err == nil && f != nil {
			fh = f
			break
		}
	}
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada file yang diupload")
	}

	stored, err := ctrl.Service.Save(fh)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	path := helper.WebPath(stored.Path)
	url := stored.URL
	if ctrl.Service.Storage.BaseURL == "" {
		url = c.BaseURL() + path
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "File berhasil diupload",
		"url":      url,
		"path":     path,
		"filename": stored.Name,
		"data":     stored,
	})
}
