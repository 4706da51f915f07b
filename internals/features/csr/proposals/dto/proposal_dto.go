package dto

import (
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"csr_backend/internals/features/csr/proposals/model"
)

const DateLayout = "2006-01-02"

// ProposalPayload metadata proposal untuk create & update.
// Field nil = tidak dikirim (update parsial); string kosong pada field opsional = dikosongkan.
type ProposalPayload struct {
	CaseID        *string          `json:"case_id" validate:"omitempty,max=50"`
	ProposalName  *string          `json:"proposal_name" validate:"omitempty,max=255"`
	Organization  *string          `json:"organization" validate:"omitempty,max=255"`
	BentukDonasi  *string          `json:"bentuk_donasi" validate:"omitempty,max=100"`
	TipeProposal  *string          `json:"tipe_proposal" validate:"omitempty,max=100"`
	ProductDetail *string          `json:"product_detail"`
	JumlahProduk  *string          `json:"jumlah_produk" validate:"omitempty,max=100"`
	Budget        *decimal.Decimal `json:"budget"`
	Catatan       *string          `json:"catatan"`
	Status        *string          `json:"status"`
	BrightStatus  *string          `json:"bright_status"`
	PicName       *string          `json:"pic_name" validate:"omitempty,max=255"`
	PicEmail      *string          `json:"pic_email" validate:"omitempty,email,max=255"`
	ProposalDate  *string          `json:"proposal_date"`
}

// ProposalFiles lampiran yang ikut dalam request.
type ProposalFiles struct {
	ProposalFile *multipart.FileHeader
	ProofFile    *multipart.FileHeader
	SupportFile  *multipart.FileHeader // file_pendukung (format lama)
}

func (f ProposalFiles) All() []*multipart.FileHeader {
	var out []*multipart.FileHeader
	for _, fh := range []*multipart.FileHeader{f.ProposalFile, f.ProofFile, f.SupportFile} {
		if fh != nil {
			out = append(out, fh)
		}
	}
	return out
}

// Nama part multipart. Alias kiri-ke-kanan: nama baru dulu, lalu nama dari form lama.
var (
	ProposalFileFields = []string{"proposal_file", "file_proposal"}
	ProofFileFields    = []string{"proof_file", "file_bukti_donasi"}
	SupportFileFields  = []string{"file_pendukung"}
)

func FilesFromForm(form *multipart.Form) ProposalFiles {
	if form == nil {
		return ProposalFiles{}
	}
	pick := func(keys []string) *multipart.FileHeader {
		for _, k := range keys {
			if fhs := form.File[k]; len(fhs) > 0 && fhs[0] != nil && fhs[0].Filename != "" {
				return fhs[0]
			}
		}
		return nil
	}
	return ProposalFiles{
		ProposalFile: pick(ProposalFileFields),
		ProofFile:    pick(ProofFileFields),
		SupportFile:  pick(SupportFileFields),
	}
}

// PayloadFromForm membaca field form satu per satu (format form lama tanpa part "metadata").
func PayloadFromForm(values map[string][]string) (ProposalPayload, error) {
	get := func(key string) *string {
		if vs, ok := values[key]; ok && len(vs) > 0 {
			v := vs[0]
			return &v
		}
		return nil
	}

	p := ProposalPayload{
		CaseID:        get("case_id"),
		ProposalName:  get("proposal_name"),
		Organization:  get("organization"),
		BentukDonasi:  get("bentuk_donasi"),
		TipeProposal:  get("tipe_proposal"),
		ProductDetail: get("product_detail"),
		JumlahProduk:  get("jumlah_produk"),
		Catatan:       get("catatan"),
		Status:        get("status"),
		BrightStatus:  get("bright_status"),
		PicName:       get("pic_name"),
		PicEmail:      get("pic_email"),
		ProposalDate:  get("proposal_date"),
	}

	if raw := get("budget"); raw != nil && strings.TrimSpace(*raw) != "" {
		b, err := decimal.NewFromString(strings.TrimSpace(*raw))
		if err != nil {
			return p, fiber.NewError(fiber.StatusBadRequest, "budget harus berupa angka")
		}
		p.Budget = &b
	}
	return p, nil
}

// Normalize trim semua field string.
func (p *ProposalPayload) Normalize() {
	for _, s := range []**string{
		&p.CaseID, &p.ProposalName, &p.Organization, &p.BentukDonasi, &p.TipeProposal,
		&p.ProductDetail, &p.JumlahProduk, &p.Catatan, &p.Status, &p.BrightStatus,
		&p.PicName, &p.PicEmail, &p.ProposalDate,
	} {
		if *s != nil {
			v := strings.TrimSpace(**s)
			*s = &v
		}
	}
}

// ParseDate menerima "YYYY-MM-DD" atau timestamp ISO (diambil bagian tanggalnya).
func ParseDate(raw string) (datatypes.Date, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(DateLayout) && (raw[len(DateLayout)] == 'T' || raw[len(DateLayout)] == ' ') {
		raw = raw[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return datatypes.Date{}, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("proposal_date %q tidak valid, gunakan format YYYY-MM-DD", raw))
	}
	return datatypes.Date(t), nil
}

// ApplyTo menimpa field model dengan field payload yang dikirim.
func (p ProposalPayload) ApplyTo(m *model.DonationProposal) error {
	if p.CaseID != nil {
		m.CaseID = *p.CaseID
	}
	if p.ProposalName != nil {
		m.ProposalName = *p.ProposalName
	}
	if p.Organization != nil {
		m.Organization = *p.Organization
	}
	if p.BentukDonasi != nil {
		m.BentukDonasi = optional(*p.BentukDonasi)
	}
	if p.TipeProposal != nil {
		m.TipeProposal = optional(*p.TipeProposal)
	}
	if p.ProductDetail != nil {
		m.ProductDetail = *p.ProductDetail
	}
	if p.JumlahProduk != nil {
		m.JumlahProduk = optional(*p.JumlahProduk)
	}
	if p.Budget != nil {
		m.Budget = *p.Budget
	}
	if p.Catatan != nil {
		m.Catatan = optional(*p.Catatan)
	}
	if p.Status != nil && *p.Status != "" {
		m.Status = *p.Status
	}
	if p.BrightStatus != nil {
		m.BrightStatus = optional(*p.BrightStatus)
	}
	if p.PicName != nil {
		m.PicName = *p.PicName
	}
	if p.PicEmail != nil {
		m.PicEmail = optional(*p.PicEmail)
	}
	if p.ProposalDate != nil {
		if *p.ProposalDate == "" {
			m.ProposalDate = nil
		} else {
			d, err := ParseDate(*p.ProposalDate)
			if err != nil {
				return err
			}
			m.ProposalDate = &d
		}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

/* ===============================
   Response
=================================*/

type ProposalResponse struct {
	ID               uint            `json:"id"`
	CaseID           string          `json:"case_id"`
	ProposalName     string          `json:"proposal_name"`
	Organization     string          `json:"organization"`
	BentukDonasi     *string         `json:"bentuk_donasi"`
	TipeProposal     *string         `json:"tipe_proposal"`
	ProductDetail    string          `json:"product_detail"`
	JumlahProduk     *string         `json:"jumlah_produk"`
	Budget           decimal.Decimal `json:"budget"`
	BudgetFormatted  string          `json:"budget_formatted"`
	Catatan          *string         `json:"catatan"`
	Status           string          `json:"status"`
	BrightStatus     *string         `json:"bright_status"`
	PicName          string          `json:"pic_name"`
	PicEmail         *string         `json:"pic_email"`
	ProposalDate     *string         `json:"proposal_date"`
	FilePendukung    *string         `json:"file_pendukung"`
	FilePath         *string         `json:"file_path"`
	ProposalFileName *string         `json:"proposal_file_name"`
	ProposalFilePath *string         `json:"proposal_file_path"`
	ProofFileName    *string         `json:"proof_file_name"`
	ProofFilePath    *string         `json:"proof_file_path"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func FromModel(m *model.DonationProposal, formatIDR func(decimal.Decimal) string) ProposalResponse {
	var date *string
	if m.ProposalDate != nil {
		s := time.Time(*m.ProposalDate).Format(DateLayout)
		date = &s
	}
	resp := ProposalResponse{
		ID:               m.ID,
		CaseID:           m.CaseID,
		ProposalName:     m.ProposalName,
		Organization:     m.Organization,
		BentukDonasi:     m.BentukDonasi,
		TipeProposal:     m.TipeProposal,
		ProductDetail:    m.ProductDetail,
		JumlahProduk:     m.JumlahProduk,
		Budget:           m.Budget,
		Catatan:          m.Catatan,
		Status:           m.Status,
		BrightStatus:     m.BrightStatus,
		PicName:          m.PicName,
		PicEmail:         m.PicEmail,
		ProposalDate:     date,
		FilePendukung:    m.FilePendukung,
		FilePath:         m.FilePath,
		ProposalFileName: m.ProposalFileName,
		ProposalFilePath: m.ProposalFilePath,
		ProofFileName:    m.ProofFileName,
		ProofFilePath:    m.ProofFilePath,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if formatIDR != nil {
		resp.BudgetFormatted = formatIDR(m.Budget)
	}
	return resp
}

func FromModels(list []model.DonationProposal, formatIDR func(decimal.Decimal) string) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i], formatIDR))
	}
	return out
}
