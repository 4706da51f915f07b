package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"csr_backend/internals/events"
	"csr_backend/internals/features/csr/proposals/dto"
	"csr_backend/internals/features/csr/proposals/model"
	helper "csr_backend/internals/helpers"
)

const (
	proposalUploadDir        = "proposals"
	defaultCaseIDAttempts    = 3
	defaultCaseIDBackoffStep = 50 * time.Millisecond
)

type ProposalService struct {
	DB             *gorm.DB
	Storage        *helper.LocalStorage
	Events         events.Publisher
	MaxUploadBytes int64

	NewCaseID         func(time.Time) string
	Now               func() time.Time
	MaxCaseIDAttempts int
	RetryBackoff      time.Duration
}

func NewProposalService(db *gorm.DB, storage *helper.LocalStorage, pub events.Publisher, maxUploadBytes int64) *ProposalService {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &ProposalService{
		DB:                db,
		Storage:           storage,
		Events:            pub,
		MaxUploadBytes:    maxUploadBytes,
		NewCaseID:         GenerateCaseID,
		Now:               time.Now,
		MaxCaseIDAttempts: defaultCaseIDAttempts,
		RetryBackoff:      defaultCaseIDBackoffStep,
	}
}

// List urut terbaru dulu. paging nil = semua data.
func (s *ProposalService) List(ctx context.Context, paging *helper.Paging) ([]model.DonationProposal, int64, error) {
	var (
		list  []model.DonationProposal
		total int64
	)
	db := s.DB.WithContext(ctx).Model(&model.DonationProposal{})
	if err := db.Count(&total).Error; err != nil {
		log.Printf("[PROPOSALS][LIST] count error: %v", err)
		return nil, 0, fmt.Errorf("count proposals: %w", err)
	}

	q := s.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if paging != nil {
		q = q.Offset(paging.Offset).Limit(paging.Limit)
	}
	if err := q.Find(&list).Error; err != nil {
		log.Printf("[PROPOSALS][LIST] query error: %v", err)
		return nil, 0, fmt.Errorf("list proposals: %w", err)
	}
	return list, total, nil
}

func (s *ProposalService) Get(ctx context.Context, id uint) (*model.DonationProposal, error) {
	var p model.DonationProposal
	err := s.DB.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Proposal tidak ditemukan")
	}
	if err != nil {
		return nil, fmt.Errorf("get proposal %d: %w", id, err)
	}
	return &p, nil
}

// Create: validasi -> simpan file -> insert. Gagal di tengah = file yang sudah tersimpan dihapus lagi.
func (s *ProposalService) Create(ctx context.Context, payload dto.ProposalPayload, files dto.ProposalFiles) (*model.DonationProposal, error) {
	if err := helper.Validate.Struct(&payload); err != nil {
		return nil, helper.ValidationFailure(err)
	}
	payload.Normalize()

	p := model.DonationProposal{Status: model.StatusInProgress}
	if err := payload.ApplyTo(&p); err != nil {
		return nil, err
	}

	generated := false
	if strings.TrimSpace(p.CaseID) == "" {
		p.CaseID = s.NewCaseID(s.Now())
		generated = true
	}

	if err := ValidateProposal(&p, payload.Budget != nil, hasNewProof(files)); err != nil {
		return nil, err
	}

	saved, err := s.storeFiles(&p, files)
	if err != nil {
		return nil, err
	}

	if err := s.insert(ctx, &p, generated); err != nil {
		s.removeFiles(saved)
		return nil, err
	}

	log.Printf("[PROPOSALS][CREATE] id=%d case_id=%s status=%s", p.ID, p.CaseID, p.Status)
	s.publish(ctx, events.ProposalCreated, eventData(&p, ""))
	return &p, nil
}

// Update parsial: field yang tidak dikirim tetap, file lama hanya diganti kalau ada upload baru.
func (s *ProposalService) Update(ctx context.Context, id uint, payload dto.ProposalPayload, files dto.ProposalFiles) (*model.DonationProposal, error) {
	if err := helper.Validate.Struct(&payload); err != nil {
		return nil, helper.ValidationFailure(err)
	}
	payload.Normalize()

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if err := payload.ApplyTo(&merged); err != nil {
		return nil, err
	}
	if err := ValidateProposal(&merged, true, hasNewProof(files)); err != nil {
		return nil, err
	}

	saved, err := s.storeFiles(&merged, files)
	if err != nil {
		return nil, err
	}

	res := s.DB.WithContext(ctx).
		Model(&model.DonationProposal{ID: id}).
		Select("*").
		Omit("id", "created_at").
		Updates(&merged)
	if res.Error != nil {
		s.removeFiles(saved)
		if isDuplicateKey(res.Error) {
			return nil, duplicateCaseID(merged.CaseID)
		}
		log.Printf("[PROPOSALS][UPDATE] id=%d error: %v", id, res.Error)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui proposal")
	}
	if res.RowsAffected == 0 {
		s.removeFiles(saved)
		return nil, fiber.NewError(fiber.StatusNotFound, "Proposal tidak ditemukan")
	}

	// file lama yang tergantikan
	s.removeFiles(replacedFiles(existing, &merged))

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Printf("[PROPOSALS][UPDATE] id=%d status=%s", id, updated.Status)
	s.publish(ctx, events.ProposalUpdated, eventData(updated, existing.Status))
	if existing.Status != updated.Status {
		s.publish(ctx, events.ProposalStatusChanged, eventData(updated, existing.Status))
	}
	return updated, nil
}

// Delete permanen; lampiran di disk ikut dihapus (best effort).
func (s *ProposalService) Delete(ctx context.Context, id uint) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	res := s.DB.WithContext(ctx).Delete(&model.DonationProposal{}, id)
	if res.Error != nil {
		log.Printf("[PROPOSALS][DELETE] id=%d error: %v", id, res.Error)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus proposal")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Proposal tidak ditemukan")
	}

	s.removeFiles(existing.StoredFiles())
	log.Printf("[PROPOSALS][DELETE] id=%d case_id=%s", id, existing.CaseID)
	s.publish(ctx, events.ProposalDeleted, eventData(existing, ""))
	return nil
}

// insert mengulang case_id hasil generate yang bentrok; case_id dari client tidak diulang.
func (s *ProposalService) insert(ctx context.Context, p *model.DonationProposal, generated bool) error {
	attempts := 1
	if generated && s.MaxCaseIDAttempts > 1 {
		attempts = s.MaxCaseIDAttempts
	}

	for i := 1; ; i++ {
		err := s.DB.WithContext(ctx).Create(p).Error
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			log.Printf("[PROPOSALS][CREATE] insert error: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan proposal")
		}
		if i >= attempts {
			log.Printf("[PROPOSALS][CREATE] case_id %s bentrok, menyerah setelah %d percobaan", p.CaseID, i)
			return duplicateCaseID(p.CaseID)
		}

		log.Printf("[PROPOSALS][CREATE] case_id %s bentrok, percobaan ulang %d/%d", p.CaseID, i+1, attempts)
		select {
		case <-ctx.Done():
			return fmt.Errorf("insert proposal: %w", ctx.Err())
		case <-time.After(time.Duration(i) * s.RetryBackoff):
		}
		p.ID = 0
		p.CaseID = s.NewCaseID(s.Now())
	}
}

// storeFiles cek semua file dulu baru tulis ke disk, jadi satu file invalid tidak meninggalkan sisa.
func (s *ProposalService) storeFiles(p *model.DonationProposal, files dto.ProposalFiles) ([]string, error) {
	all := files.All()
	if len(all) == 0 {
		return nil, nil
	}
	if s.Storage == nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Storage upload belum dikonfigurasi")
	}

	rule := helper.ProposalAttachmentRule(s.MaxUploadBytes)
	for _, fh := range all {
		if _, err := helper.CheckMultipart(fh, rule); err != nil {
			return nil, err
		}
	}

	var saved []string
	save := func(fh *multipart.FileHeader, name, path **string) error {
		if fh == nil {
			return nil
		}
		stored, err := s.Storage.SaveMultipart(fh, proposalUploadDir, rule)
		if err != nil {
			return err
		}
		web := helper.WebPath(stored.Path)
		saved = append(saved, web)
		display := helper.DisplayFilename(fh.Filename)
		*name = &display
		*path = &web
		return nil
	}

	steps := []struct {
		fh         *multipart.FileHeader
		name, path **string
	}{
		{files.ProposalFile, &p.ProposalFileName, &p.ProposalFilePath},
		{files.ProofFile, &p.ProofFileName, &p.ProofFilePath},
		{files.SupportFile, &p.FilePendukung, &p.FilePath},
	}
	for _, st := range steps {
		if err := save(st.fh, st.name, st.path); err != nil {
			s.removeFiles(saved)
			return nil, err
		}
	}
	return saved, nil
}

func (s *ProposalService) removeFiles(paths []string) {
	if s.Storage == nil {
		return
	}
	for _, p := range paths {
		_ = s.Storage.Remove(p)
	}
}

func (s *ProposalService) publish(ctx context.Context, typ string, data map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.NewEvent(typ, data)); err != nil {
		log.Printf("[EVENTS] gagal publish %s: %v", typ, err)
	}
}

// file bukti baru: proof_file, atau file_pendukung yang mengisi file_path lama
func hasNewProof(files dto.ProposalFiles) bool {
	return files.ProofFile != nil || files.SupportFile != nil
}

func replacedFiles(before, after *model.DonationProposal) []string {
	var out []string
	pairs := [][2]*string{
		{before.ProposalFilePath, after.ProposalFilePath},
		{before.ProofFilePath, after.ProofFilePath},
		{before.FilePath, after.FilePath},
	}
	for _, pr := range pairs {
		if pr[0] != nil && *pr[0] != "" && (pr[1] == nil || *pr[1] != *pr[0]) {
			out = append(out, *pr[0])
		}
	}
	return out
}

func eventData(p *model.DonationProposal, previousStatus string) map[string]any {
	data := map[string]any{
		"id":      p.ID,
		"case_id": p.CaseID,
		"status":  p.Status,
		"budget":  p.Budget.StringFixed(2),
	}
	if previousStatus != "" {
		data["previous_status"] = previousStatus
	}
	return data
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

func duplicateCaseID(caseID string) error {
	return fiber.NewError(fiber.StatusInternalServerError,
		fmt.Sprintf("case_id %q sudah digunakan", caseID))
}
