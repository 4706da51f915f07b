package constants

import (
	"path/filepath"
	"strings"
)

// Lampiran proposal: pdf, doc, docx, jpeg, png.
var ProposalAttachmentMIME = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Upload gambar generik: jpeg, jpg, png, gif, webp.
var ImageUploadMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var proposalAttachmentExt = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

var imageUploadExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// MIMEFromExt mengembalikan MIME untuk ekstensi yang diizinkan pada kategori tertentu.
func MIMEFromExt(filename string, images bool) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	table := proposalAttachmentExt
	if images {
		table = imageUploadExt
	}
	m, ok := table[ext]
	return m, ok
}
