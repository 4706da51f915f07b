package service

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gorm.io/gorm"

	"csr_backend/internals/features/csr/proposals/dto"
	"csr_backend/internals/features/csr/proposals/model"
	helper "csr_backend/internals/helpers"
)

// ReportService laporan cetak: markdown -> HTML.
type ReportService struct {
	DB    *gorm.DB
	Stats *StatsService
	Now   func() time.Time
	md    goldmark.Markdown
}

func NewReportService(db *gorm.DB, stats *StatsService) *ReportService {
	return &ReportService{
		DB:    db,
		Stats: stats,
		Now:   time.Now,
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Markdown menyusun isi laporan untuk periode f.
func (r *ReportService) Markdown(ctx context.Context, f PeriodFilter) ([]byte, error) {
	dash, err := r.Stats.Dashboard(ctx, f)
	if err != nil {
		return nil, err
	}

	var list []model.DonationProposal
	q := f.Apply(r.DB.WithContext(ctx).Model(&model.DonationProposal{}), summaryDateExpr)
	if err := q.Order("proposal_date ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("report proposals: %w", err)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "# Laporan Proposal CSR\n\n")
	fmt.Fprintf(&b, "Periode: **%s**  \nDicetak: %s\n\n", dash.Period.Label, r.Now().Format("02-01-2006 15:04"))

	writeSummary(&b, dash.Summary)
	writeMonthly(&b, dash.Monthly)
	writeProposals(&b, list)
	return b.Bytes(), nil
}

// Render -> dokumen HTML lengkap siap print.
func (r *ReportService) Render(ctx context.Context, f PeriodFilter) ([]byte, error) {
	src, err := r.Markdown(ctx, f)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := r.md.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html lang=\"id\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>Laporan Proposal CSR - %s</title>\n", html.EscapeString(f.Label()))
	out.WriteString(reportCSS)
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

func writeSummary(b *bytes.Buffer, s dto.StatsSummary) {
	b.WriteString("## Ringkasan\n\n")
	b.WriteString("| Keterangan | Jumlah |\n|---|---:|\n")
	fmt.Fprintf(b, "| Total proposal | %d |\n", s.TotalProposals)
	fmt.Fprintf(b, "| In Progress | %d |\n", s.InProgress)
	fmt.Fprintf(b, "| Siap Diambil | %d |\n", s.Waiting)
	fmt.Fprintf(b, "| Done | %d |\n", s.Completed)
	fmt.Fprintf(b, "| Total budget | %s |\n\n", s.TotalBudgetFormatted)
}

func writeMonthly(b *bytes.Buffer, rows []dto.MonthlyStat) {
	b.WriteString("## Per Bulan\n\n")
	if len(rows) == 0 {
		b.WriteString("_Belum ada data._\n\n")
		return
	}
	b.WriteString("| Bulan | In Progress | Siap Diambil | Done | Total | Budget |\n|---|---:|---:|---:|---:|---:|\n")
	for _, m := range rows {
		fmt.Fprintf(b, "| %s | %d | %d | %d | %d | %s |\n",
			m.Label, m.Breakdown.InProgress, m.Breakdown.Waiting, m.Breakdown.Done, m.Total, helper.FormatIDR(m.TotalBudget))
	}
	b.WriteString("\n")
}

func writeProposals(b *bytes.Buffer, list []model.DonationProposal) {
	b.WriteString("## Daftar Proposal\n\n")
	if len(list) == 0 {
		b.WriteString("_Tidak ada proposal pada periode ini._\n")
		return
	}
	b.WriteString("| Case ID | Proposal | Organisasi | PIC | Tanggal | Status | Budget |\n|---|---|---|---|---|---|---:|\n")
	for i := range list {
		p := &list[i]
		date := "-"
		if p.ProposalDate != nil {
			date = time.Time(*p.ProposalDate).Format(dto.DateLayout)
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			cell(p.CaseID), cell(p.ProposalName), cell(p.Organization), cell(p.PicName),
			date, cell(p.Status), helper.FormatIDR(p.Budget))
	}
}

var cellReplacer = strings.NewReplacer("|", "\\|", "\n", " ", "\r", "", "<", "&lt;", ">", "&gt;")

// cell escape isi sel tabel markdown
func cell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	return cellReplacer.Replace(s)
}

const reportCSS = `<style>
body { font-family: Arial, sans-serif; font-size: 12px; margin: 24px; color: #222; }
h1 { font-size: 20px; margin-bottom: 4px; }
h2 { font-size: 15px; margin-top: 24px; border-bottom: 1px solid #ccc; }
table { border-collapse: collapse; width: 100%; margin-top: 8px; }
th, td { border: 1px solid #999; padding: 4px 6px; }
th { background: #f0f0f0; }
@media print { body { margin: 0; } }
</style>
`
