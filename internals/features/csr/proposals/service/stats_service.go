package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	database "csr_backend/internals/databases"
	"csr_backend/internals/features/csr/proposals/dto"
	"csr_backend/internals/features/csr/proposals/model"
	helper "csr_backend/internals/helpers"
)

// Sumbu waktu: summary pakai proposal_date, monthly fallback ke created_at.
const (
	summaryDateExpr = "proposal_date"
	monthlyDateExpr = "COALESCE(proposal_date, created_at)"
)

// Skala kolom budget (DECIMAL(15,2)). SUM di SQLite balik sebagai REAL,
// jadi hasil agregasi dibulatkan lagi ke skala ini.
const budgetScale = 2

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

type summaryRow struct {
	TotalProposals sql.NullInt64
	InProgress     sql.NullInt64
	Waiting        sql.NullInt64
	Completed      sql.NullInt64
	TotalBudget    decimal.NullDecimal
}

func (s *StatsService) Summary(ctx context.Context, f PeriodFilter) (dto.StatsSummary, error) {
	var row summaryRow
	q := f.Apply(s.DB.WithContext(ctx).Model(&model.DonationProposal{}), summaryDateExpr)
	err := q.Select(`COUNT(*) AS total_proposals,
		SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS in_progress,
		SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS waiting,
		SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed,
		SUM(budget) AS total_budget`,
		model.StatusInProgress, model.StatusSiapDiambil, model.StatusDone,
	).Scan(&row).Error
	if err != nil {
		log.Printf("[STATS][SUMMARY] query error: %v", err)
		return dto.StatsSummary{}, fmt.Errorf("stats summary: %w", err)
	}

	// SUM() di atas nol baris = NULL, dipaksa jadi 0
	total := decimal.Zero
	if row.TotalBudget.Valid {
		total = row.TotalBudget.Decimal.Round(budgetScale)
	}
	return dto.StatsSummary{
		TotalProposals:       row.TotalProposals.Int64,
		InProgress:           row.InProgress.Int64,
		Waiting:              row.Waiting.Int64,
		Completed:            row.Completed.Int64,
		TotalBudget:          total,
		TotalBudgetFormatted: helper.FormatIDR(total),
	}, nil
}

// MonthlyRow satu grup (bulan, status) dari query agregasi.
type MonthlyRow struct {
	MonthKey string
	Status   string
	RowCount int64
	Budget   decimal.NullDecimal
}

func (s *StatsService) Monthly(ctx context.Context, f PeriodFilter) ([]dto.MonthlyStat, error) {
	keyExpr := database.DateSQLFor(s.DB).MonthKey(monthlyDateExpr)

	var rows []MonthlyRow
	q := f.Apply(s.DB.WithContext(ctx).Model(&model.DonationProposal{}), monthlyDateExpr)
	err := q.Select(keyExpr + " AS month_key, status, COUNT(*) AS row_count, SUM(budget) AS budget").
		Group("month_key, status").
		Order("month_key ASC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("[STATS][MONTHLY] query error: %v", err)
		return nil, fmt.Errorf("stats monthly: %w", err)
	}
	return FoldMonthly(rows), nil
}

// FoldMonthly menyusun baris (bulan, status) menjadi satu entri per bulan,
// urut naik. Status tidak dikenal diabaikan.
func FoldMonthly(rows []MonthlyRow) []dto.MonthlyStat {
	byMonth := make(map[string]*dto.MonthlyStat)
	for _, r := range rows {
		if r.MonthKey == "" {
			continue
		}
		if _, ok := byMonth[r.MonthKey]; !ok {
			byMonth[r.MonthKey] = &dto.MonthlyStat{
				Month:       r.MonthKey,
				Label:       MonthLabel(r.MonthKey),
				TotalBudget: decimal.Zero,
			}
		}
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, r := range rows {
		entry, ok := byMonth[r.MonthKey]
		if !ok {
			continue
		}
		switch r.Status {
		case model.StatusInProgress:
			entry.Breakdown.InProgress += r.RowCount
		case model.StatusSiapDiambil:
			entry.Breakdown.Waiting += r.RowCount
		case model.StatusDone:
			entry.Breakdown.Done += r.RowCount
		default:
			continue
		}
		entry.Total += r.RowCount
		if r.Budget.Valid {
			entry.TotalBudget = entry.TotalBudget.Add(r.Budget.Decimal.Round(budgetScale))
		}
	}

	out := make([]dto.MonthlyStat, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byMonth[k])
	}
	return out
}

// Dashboard menjalankan Summary & Monthly paralel.
func (s *StatsService) Dashboard(ctx context.Context, f PeriodFilter) (dto.DashboardStats, error) {
	var (
		summary dto.StatsSummary
		monthly []dto.MonthlyStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.Summary(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = s.Monthly(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.DashboardStats{}, err
	}

	return dto.DashboardStats{
		Period:  f.Info(),
		Summary: summary,
		Monthly: monthly,
	}, nil
}
