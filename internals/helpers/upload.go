package helper

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"csr_backend/internals/constants"
)

const PublicUploadPrefix = "/uploads"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// SanitizeFilename buang path & karakter selain huruf, angka, titik, dash, underscore.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = path.Base(filename)
	safe := unsafeFilenameChars.ReplaceAllString(filename, "_")
	safe = strings.Trim(safe, ".")
	if safe == "" {
		return "file"
	}
	return safe
}

const maxDisplayNameRunes = 255

// DisplayFilename nama asli dari client untuk ditampilkan (tanpa folder, maks 255 karakter).
// Nama di disk tetap pakai SanitizeFilename.
func DisplayFilename(filename string) string {
	name := strings.TrimSpace(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "file"
	}
	if r := []rune(name); len(r) > maxDisplayNameRunes {
		name = string(r[:maxDisplayNameRunes])
	}
	return name
}

// TimestampedFilename -> "<unix millis>-<nama aman>"
func TimestampedFilename(now time.Time, originalFilename string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), SanitizeFilename(originalFilename))
}

// UploadRule batasan untuk satu jenis upload.
type UploadRule struct {
	MaxBytes int64
	Allowed  map[string]string // mime -> ext
	Images   bool              // pakai tabel ekstensi gambar untuk fallback
	Label    string            // dipakai di pesan error
}

func ProposalAttachmentRule(maxBytes int64) UploadRule {
	return UploadRule{MaxBytes: maxBytes, Allowed: constants.ProposalAttachmentMIME, Label: "PDF, DOC, DOCX, JPG, PNG"}
}

func ImageUploadRule(maxBytes int64) UploadRule {
	return UploadRule{MaxBytes: maxBytes, Allowed: constants.ImageUploadMIME, Images: true, Label: "JPEG, JPG, PNG, GIF, WEBP"}
}

type StoredFile struct {
	Name string `json:"filename"`
	Path string `json:"path"` // relatif terhadap direktori upload
	URL  string `json:"url"`
	MIME string `json:"mime"`
	Size int64  `json:"size"`
}

// LocalStorage menyimpan file ke disk dan menyajikannya lewat /uploads.
type LocalStorage struct {
	Dir     string
	BaseURL string
	now     func() time.Time
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// PublicURL path relatif -> URL publik.
func (s *LocalStorage) PublicURL(rel string) string {
	return s.BaseURL + WebPath(rel)
}

// WebPath path relatif -> "/uploads/<rel>", bentuk yang disimpan di DB.
func WebPath(rel string) string {
	return PublicUploadPrefix + "/" + filepath.ToSlash(rel)
}

// DetectMIME membaca header file lalu mencocokkan dengan aturan upload.
// Zip/OLE generik (docx/doc) jatuh ke pengecekan ekstensi.
func DetectMIME(r io.Reader, filename string, rule UploadRule) (string, error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("gagal membaca file: %w", err)
	}
	for m := mt; m != nil; m = m.Parent() {
		if _, ok := rule.Allowed[m.String()]; ok {
			return m.String(), nil
		}
	}

	generic := mt.Is("application/zip") || mt.Is("application/x-ole-storage") || mt.Is("application/octet-stream")
	if generic {
		if m, ok := constants.MIMEFromExt(filename, rule.Images); ok {
			if _, allowed := rule.Allowed[m]; allowed {
				return m, nil
			}
		}
	}
	return "", fiber.NewError(fiber.StatusBadRequest,
		fmt.Sprintf("Tipe file %q tidak diizinkan. Hanya %s", filename, rule.Label))
}

// CheckMultipart validasi ukuran & tipe tanpa menyimpan file.
func CheckMultipart(fh *multipart.FileHeader, rule UploadRule) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if rule.MaxBytes > 0 && fh.Size > rule.MaxBytes {
		return "", fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Ukuran file %q melebihi batas %dMB", fh.Filename, rule.MaxBytes>>20))
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file: %w", err)
	}
	defer f.Close()
	return DetectMIME(f, fh.Filename, rule)
}

// SaveMultipart validasi lalu tulis file ke <Dir>/<subdir>/<timestamp>-<nama>.
func (s *LocalStorage) SaveMultipart(fh *multipart.FileHeader, subdir string, rule UploadRule) (*StoredFile, error) {
	mime, err := CheckMultipart(fh, rule)
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()

	name := SanitizeFilename(fh.Filename)
	stored, err := s.write(src, subdir, name)
	if err != nil {
		return nil, err
	}
	stored.MIME = mime
	return stored, nil
}

// SaveBytes dipakai untuk hasil konversi (mis. webp).
func (s *LocalStorage) SaveBytes(data []byte, subdir, filename, mime string) (*StoredFile, error) {
	stored, err := s.write(bytes.NewReader(data), subdir, SanitizeFilename(filename))
	if err != nil {
		return nil, err
	}
	stored.MIME = mime
	return stored, nil
}

func (s *LocalStorage) write(src io.Reader, subdir, name string) (*StoredFile, error) {
	dir := filepath.Join(s.Dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("gagal membuat folder upload: %w", err)
	}

	filename := TimestampedFilename(s.now(), name)
	dst, err := os.OpenFile(filepath.Join(dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		// dua file bernama sama di milidetik yang sama
		filename = fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), uuid.NewString()[:8], name)
		dst, err = os.OpenFile(filepath.Join(dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return nil, fmt.Errorf("gagal membuat file: %w", err)
	}

	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst.Name())
		return nil, fmt.Errorf("gagal menyimpan file: %w", err)
	}

	rel := filepath.ToSlash(filepath.Join(subdir, filename))
	return &StoredFile{
		Name: name,
		Path: rel,
		URL:  s.PublicURL(rel),
		Size: n,
	}, nil
}

// Remove hapus file berdasarkan path relatif; file yang sudah tidak ada diabaikan.
func (s *LocalStorage) Remove(rel string) error {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), PublicUploadPrefix+"/")
	if rel == "" {
		return nil
	}
	clean := filepath.Clean("/" + rel)
	err := os.Remove(filepath.Join(s.Dir, clean))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[UPLOAD] gagal hapus %s: %v", rel, err)
		return err
	}
	return nil
}
