package service

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "csr_backend/internals/helpers"
)

const (
	imageUploadDir = "images"
	webpQuality    = 85
)

// ImageUploadService simpan gambar program; jpeg/png dikonversi ke WebP,
// gif & webp disimpan apa adanya.
type ImageUploadService struct {
	Storage  *helper.LocalStorage
	MaxBytes int64
	MaxWidth int
}

func NewImageUploadService(storage *helper.LocalStorage, maxBytes int64, maxWidth int) *ImageUploadService {
	return &ImageUploadService{Storage: storage, MaxBytes: maxBytes, MaxWidth: maxWidth}
}

func (s *ImageUploadService) Save(fh *multipart.FileHeader) (*helper.StoredFile, error) {
	rule := helper.ImageUploadRule(s.MaxBytes)
	mime, err := helper.CheckMultipart(fh, rule)
	if err != nil {
		return nil, err
	}

	if mime == "image/gif" || mime == "image/webp" {
		return s.Storage.SaveMultipart(fh, imageUploadDir, rule)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca file: %w", err)
	}

	out, err := helper.ConvertToWebP(data, s.MaxWidth, webpQuality)
	if err != nil {
		log.Printf("[UPLOAD] konversi webp gagal %s: %v", fh.Filename, err)
		return nil, fiber.NewError(fiber.StatusBadRequest, "File gambar rusak atau tidak bisa dibaca")
	}

	safe := helper.SanitizeFilename(fh.Filename)
	name := strings.TrimSuffix(safe, filepath.Ext(safe)) + ".webp"
	stored, err := s.Storage.SaveBytes(out, imageUploadDir, name, "image/webp")
	if err != nil {
		return nil, err
	}
	log.Printf("[UPLOAD] %s -> %s (%d -> %d bytes)", fh.Filename, stored.Path, fh.Size, stored.Size)
	return stored, nil
}
