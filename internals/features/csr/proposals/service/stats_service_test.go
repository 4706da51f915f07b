package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"csr_backend/internals/features/csr/proposals/model"
)

func TestFoldMonthly(t *testing.T) {
	rows := []MonthlyRow{
		{MonthKey: "2025-04", Status: model.StatusDone, RowCount: 1, Budget: nd(300)},
		{MonthKey: "2025-03", Status: model.StatusInProgress, RowCount: 2, Budget: nd(100)},
		{MonthKey: "2025-03", Status: model.StatusSiapDiambil, RowCount: 1, Budget: nd(50)},
		{MonthKey: "2025-03", Status: "Archived", RowCount: 7, Budget: nd(999)},
		{MonthKey: "2024-12", Status: model.StatusInProgress, RowCount: 1},
	}

	got := FoldMonthly(rows)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(got), got)
	}
	wantKeys := []string{"2024-12", "2025-03", "2025-04"}
	for i, k := range wantKeys {
		if got[i].Month != k {
			t.Fatalf("got[%d].Month = %s, want %s", i, got[i].Month, k)
		}
	}

	mar := got[1]
	if mar.Label != "Mar 2025" {
		t.Errorf("label = %q", mar.Label)
	}
	if mar.Breakdown.InProgress != 2 || mar.Breakdown.Waiting != 1 || mar.Breakdown.Done != 0 {
		t.Errorf("breakdown = %+v", mar.Breakdown)
	}
	if mar.Total != 3 {
		t.Errorf("total = %d, unknown status must be ignored", mar.Total)
	}
	if !mar.TotalBudget.Equal(decimal.NewFromInt(150)) {
		t.Errorf("total_budget = %s", mar.TotalBudget)
	}
	if !got[0].TotalBudget.IsZero() {
		t.Errorf("NULL budget must fold to 0, got %s", got[0].TotalBudget)
	}
}

func TestFoldMonthlyEmpty(t *testing.T) {
	got := FoldMonthly(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestSummaryZeroData(t *testing.T) {
	f := newFixture(t)
	stats := NewStatsService(f.db)

	s, err := stats.Summary(context.Background(), PeriodFilter{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalProposals != 0 || s.InProgress != 0 || s.Waiting != 0 || s.Completed != 0 {
		t.Fatalf("counts = %+v", s)
	}
	if !s.TotalBudget.IsZero() {
		t.Fatalf("total_budget = %s, want 0", s.TotalBudget)
	}

	monthly, err := stats.Monthly(context.Background(), PeriodFilter{})
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if monthly == nil || len(monthly) != 0 {
		t.Fatalf("monthly = %#v, want []", monthly)
	}
}

func seedStats(t *testing.T, f *fixture) {
	t.Helper()
	seed(t, f.db, "CSR-2025-001", model.StatusInProgress, 1000, date(2025, time.March, 2))
	seed(t, f.db, "CSR-2025-002", model.StatusDone, 2000, date(2025, time.March, 20))
	seed(t, f.db, "CSR-2025-003", model.StatusSiapDiambil, 500, date(2025, time.April, 1))
	seed(t, f.db, "CSR-2025-004", model.StatusInProgress, 250, date(2025, time.December, 31))
	seed(t, f.db, "CSR-2024-001", model.StatusDone, 4000, date(2024, time.March, 15))
}

func TestSummaryAndMonthlyAgree(t *testing.T) {
	f := newFixture(t)
	seedStats(t, f)
	stats := NewStatsService(f.db)
	ctx := context.Background()

	filters := []PeriodFilter{{}, {Year: 2025}, {Year: 2025, Month: 3}, {Year: 2024}, {Year: 2023}}
	for _, pf := range filters {
		s, err := stats.Summary(ctx, pf)
		if err != nil {
			t.Fatalf("summary %+v: %v", pf, err)
		}
		if s.TotalProposals != s.InProgress+s.Waiting+s.Completed {
			t.Errorf("%+v: total %d != statuses %d+%d+%d", pf, s.TotalProposals, s.InProgress, s.Waiting, s.Completed)
		}

		monthly, err := stats.Monthly(ctx, pf)
		if err != nil {
			t.Fatalf("monthly %+v: %v", pf, err)
		}
		var sum int64
		budget := decimal.Zero
		for _, m := range monthly {
			sum += m.Total
			budget = budget.Add(m.TotalBudget)
		}
		if sum != s.TotalProposals {
			t.Errorf("%+v: monthly total %d != summary %d", pf, sum, s.TotalProposals)
		}
		if !budget.Equal(s.TotalBudget) {
			t.Errorf("%+v: monthly budget %s != summary %s", pf, budget, s.TotalBudget)
		}
	}
}

func TestSummaryYear2025(t *testing.T) {
	f := newFixture(t)
	seedStats(t, f)

	s, err := NewStatsService(f.db).Summary(context.Background(), PeriodFilter{Year: 2025})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalProposals != 4 || s.InProgress != 2 || s.Waiting != 1 || s.Completed != 1 {
		t.Fatalf("summary = %+v", s)
	}
	if !s.TotalBudget.Equal(decimal.NewFromInt(3750)) {
		t.Fatalf("total_budget = %s", s.TotalBudget)
	}
	if s.TotalBudgetFormatted == "" {
		t.Fatal("formatted budget empty")
	}
}

func TestMonthlyMarch2025(t *testing.T) {
	f := newFixture(t)
	seedStats(t, f)

	pf, err := ResolvePeriod("03", "2025")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	monthly, err := NewStatsService(f.db).Monthly(context.Background(), pf)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if len(monthly) != 1 {
		t.Fatalf("len = %d, want 1: %+v", len(monthly), monthly)
	}
	m := monthly[0]
	if m.Month != "2025-03" || m.Label != "Mar 2025" {
		t.Fatalf("entry = %+v", m)
	}
	if m.Breakdown.InProgress != 1 || m.Breakdown.Done != 1 || m.Breakdown.Waiting != 0 || m.Total != 2 {
		t.Fatalf("breakdown = %+v total=%d", m.Breakdown, m.Total)
	}
}

func TestMonthlyFallsBackToCreatedAt(t *testing.T) {
	f := newFixture(t)
	p := seed(t, f.db, "CSR-2025-010", model.StatusInProgress, 100, nil)
	created := time.Date(2025, time.June, 5, 10, 0, 0, 0, time.UTC)
	if err := f.db.Model(&p).UpdateColumn("created_at", created).Error; err != nil {
		t.Fatalf("set created_at: %v", err)
	}

	monthly, err := NewStatsService(f.db).Monthly(context.Background(), PeriodFilter{})
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if len(monthly) != 1 || monthly[0].Month != "2025-06" {
		t.Fatalf("monthly = %+v", monthly)
	}
}

func TestStatsIdempotent(t *testing.T) {
	f := newFixture(t)
	seedStats(t, f)
	stats := NewStatsService(f.db)
	ctx := context.Background()

	a, err := stats.Dashboard(ctx, PeriodFilter{Year: 2025})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	b, err := stats.Dashboard(ctx, PeriodFilter{Year: 2025})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if a.Summary.TotalProposals != b.Summary.TotalProposals || len(a.Monthly) != len(b.Monthly) {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
	if a.Period.Label != "2025" {
		t.Fatalf("period label = %q", a.Period.Label)
	}
}

func nd(v int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
}

func TestBudgetSumsStayExact(t *testing.T) {
	f := newFixture(t)
	for i, b := range []string{"0.10", "0.20"} {
		p := seed(t, f.db, fmt.Sprintf("CSR-2025-10%d", i), model.StatusInProgress, 0, date(2025, time.May, 1+i))
		if err := f.db.Model(&p).Update("budget", decimal.RequireFromString(b)).Error; err != nil {
			t.Fatalf("set budget: %v", err)
		}
	}
	stats := NewStatsService(f.db)
	ctx := context.Background()
	want := decimal.RequireFromString("0.30")

	s, err := stats.Summary(ctx, PeriodFilter{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !s.TotalBudget.Equal(want) || s.TotalBudget.String() != "0.3" {
		t.Fatalf("total_budget = %s, want 0.3", s.TotalBudget)
	}

	monthly, err := stats.Monthly(ctx, PeriodFilter{Year: 2025})
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if len(monthly) != 1 || !monthly[0].TotalBudget.Equal(want) {
		t.Fatalf("monthly = %+v, want one entry with 0.3", monthly)
	}
}

func TestFoldMonthlyRoundsFloatSums(t *testing.T) {
	rows := []MonthlyRow{
		{MonthKey: "2025-05", Status: model.StatusInProgress, RowCount: 2, Budget: decimal.NullDecimal{Decimal: decimal.RequireFromString("0.30000000000000004"), Valid: true}},
		{MonthKey: "2025-05", Status: model.StatusDone, RowCount: 1, Budget: decimal.NullDecimal{Decimal: decimal.RequireFromString("1.1999999999999999"), Valid: true}},
	}
	got := FoldMonthly(rows)
	if len(got) != 1 || got[0].TotalBudget.String() != "1.5" {
		t.Fatalf("fold = %+v, want total_budget 1.5", got)
	}
}
