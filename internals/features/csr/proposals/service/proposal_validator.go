package service

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"csr_backend/internals/features/csr/proposals/model"
)

// Pesan validasi yang juga dipakai di test.
const (
	MsgProofRequired = "Status Done wajib melampirkan file bukti donasi (proof_file)"
	MsgMissingFields = "Field wajib belum diisi"
)

// MissingFields daftar field wajib yang kosong setelah trim.
// budgetSet=false berarti budget tidak pernah dikirim.
func MissingFields(p *model.DonationProposal, budgetSet bool) []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}

	check("case_id", p.CaseID)
	check("proposal_name", p.ProposalName)
	check("organization", p.Organization)
	check("pic_name", p.PicName)
	if p.ProposalDate == nil {
		missing = append(missing, "proposal_date")
	}
	check("product_detail", p.ProductDetail)
	if !budgetSet {
		missing = append(missing, "budget")
	}
	return missing
}

// ValidateProposal dijalankan sebelum file disimpan dan sebelum query tulis.
// newProof=true kalau request ini membawa file bukti baru.
func ValidateProposal(p *model.DonationProposal, budgetSet, newProof bool) error {
	if missing := MissingFields(p, budgetSet); len(missing) > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s: %s", MsgMissingFields, strings.Join(missing, ", ")))
	}

	if !model.IsValidStatus(p.Status) {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("status %q tidak valid, pilih: %s", p.Status, strings.Join(model.Statuses, ", ")))
	}
	if p.BrightStatus != nil && !model.IsValidBrightStatus(*p.BrightStatus) {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("bright_status %q tidak valid, pilih: %s", *p.BrightStatus, strings.Join(model.BrightStatuses, ", ")))
	}
	if p.Budget.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "budget tidak boleh negatif")
	}

	if p.Status == model.StatusDone && !newProof && !p.HasProof() {
		return fiber.NewError(fiber.StatusBadRequest, MsgProofRequired)
	}
	return nil
}
