package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Status utama proposal: In Progress -> Siap Diambil -> Done.
const (
	StatusInProgress  = "In Progress"
	StatusSiapDiambil = "Siap Diambil"
	StatusDone        = "Done"
)

// Bright status: flag persetujuan pihak luar, independen dari Status.
const (
	BrightPending  = "Pending"
	BrightApproved = "Approved"
	BrightRejected = "Rejected"
)

var Statuses = []string{StatusInProgress, StatusSiapDiambil, StatusDone}

var BrightStatuses = []string{BrightPending, BrightApproved, BrightRejected}

type DonationProposal struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CaseID        string          `gorm:"column:case_id;type:varchar(50);uniqueIndex;not null" json:"case_id"`
	ProposalName  string          `gorm:"column:proposal_name;type:varchar(255);not null" json:"proposal_name"`
	Organization  string          `gorm:"column:organization;type:varchar(255);not null" json:"organization"`
	BentukDonasi  *string         `gorm:"column:bentuk_donasi;type:varchar(100)" json:"bentuk_donasi"`
	TipeProposal  *string         `gorm:"column:tipe_proposal;type:varchar(100)" json:"tipe_proposal"`
	ProductDetail string          `gorm:"column:product_detail;type:text;not null" json:"product_detail"`
	JumlahProduk  *string         `gorm:"column:jumlah_produk;type:varchar(100)" json:"jumlah_produk"`
	Budget        decimal.Decimal `gorm:"column:budget;type:numeric(15,2);not null;default:0" json:"budget"`
	Catatan       *string         `gorm:"column:catatan;type:text" json:"catatan"`
	Status        string          `gorm:"column:status;type:varchar(20);not null;default:'In Progress'" json:"status"`
	BrightStatus  *string         `gorm:"column:bright_status;type:varchar(20)" json:"bright_status"`
	PicName       string          `gorm:"column:pic_name;type:varchar(255);not null" json:"pic_name"`
	PicEmail      *string         `gorm:"column:pic_email;type:varchar(255)" json:"pic_email"`
	ProposalDate  *datatypes.Date `gorm:"column:proposal_date;type:date" json:"proposal_date"`

	// lampiran lama (satu file)
	FilePendukung *string `gorm:"column:file_pendukung;type:varchar(255)" json:"file_pendukung"`
	FilePath      *string `gorm:"column:file_path;type:varchar(500)" json:"file_path"`

	ProposalFileName *string `gorm:"column:proposal_file_name;type:varchar(255)" json:"proposal_file_name"`
	ProposalFilePath *string `gorm:"column:proposal_file_path;type:varchar(500)" json:"proposal_file_path"`
	ProofFileName    *string `gorm:"column:proof_file_name;type:varchar(255)" json:"proof_file_name"`
	ProofFilePath    *string `gorm:"column:proof_file_path;type:varchar(500)" json:"proof_file_path"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DonationProposal) TableName() string {
	return "donation_proposals"
}

// HasProof: bukti baru (proof_file_path) atau lampiran lama (file_path).
func (p *DonationProposal) HasProof() bool {
	return nonEmpty(p.ProofFilePath) || nonEmpty(p.FilePath)
}

// StoredFiles semua path lampiran yang tersimpan (untuk dibersihkan saat delete).
func (p *DonationProposal) StoredFiles() []string {
	var out []string
	for _, s := range []*string{p.FilePath, p.ProposalFilePath, p.ProofFilePath} {
		if nonEmpty(s) {
			out = append(out, *s)
		}
	}
	return out
}

func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidBrightStatus(s string) bool {
	for _, v := range BrightStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func nonEmpty(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
