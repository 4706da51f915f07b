package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"csr_backend/internals/databases/testdb"
	"csr_backend/internals/events"
	"csr_backend/internals/features/csr/proposals/dto"
	"csr_backend/internals/features/csr/proposals/model"
	helper "csr_backend/internals/helpers"
)

var pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

type fixture struct {
	db        *gorm.DB
	svc       *ProposalService
	recorder  *events.Recorder
	uploadDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	dir := t.TempDir()
	rec := &events.Recorder{}
	svc := NewProposalService(db, helper.NewLocalStorage(dir, ""), rec, 5<<20)
	svc.RetryBackoff = 0
	return &fixture{db: db, svc: svc, recorder: rec, uploadDir: dir}
}

func (f *fixture) count(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&model.DonationProposal{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

// storedFiles isi folder upload proposal.
func (f *fixture) storedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(f.uploadDir, proposalUploadDir))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func (f *fixture) diskPath(web string) string {
	rel := web[len(helper.PublicUploadPrefix)+1:]
	return filepath.Join(f.uploadDir, filepath.FromSlash(rel))
}

func strPtr(s string) *string { return &s }

func validPayload() dto.ProposalPayload {
	budget := decimal.NewFromInt(1500000)
	return dto.ProposalPayload{
		ProposalName:  strPtr("Bantuan Sembako Ramadhan"),
		Organization:  strPtr("Yayasan Peduli"),
		ProductDetail: strPtr("200 paket sembako"),
		Budget:        &budget,
		PicName:       strPtr("Siti"),
		PicEmail:      strPtr("siti@example.org"),
		ProposalDate:  strPtr("2025-03-10"),
	}
}

// fileHeader membangun *multipart.FileHeader lewat body multipart sungguhan.
func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(body, mw.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field][0]
}

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

func date(y int, m time.Month, d int) *datatypes.Date {
	v := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}

// seed insert langsung tanpa lewat service.
func seed(t *testing.T, db *gorm.DB, caseID, status string, budget int64, on *datatypes.Date) model.DonationProposal {
	t.Helper()
	p := model.DonationProposal{
		CaseID:        caseID,
		ProposalName:  "Proposal " + caseID,
		Organization:  "Org",
		ProductDetail: "detail",
		Budget:        decimal.NewFromInt(budget),
		Status:        status,
		PicName:       "PIC",
		ProposalDate:  on,
	}
	if status == model.StatusDone {
		p.ProofFilePath = strPtr("/uploads/proposals/bukti-" + caseID + ".pdf")
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed %s: %v", caseID, err)
	}
	return p
}
