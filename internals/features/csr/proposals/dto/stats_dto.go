package dto

import "github.com/shopspring/decimal"

type StatsSummary struct {
	TotalProposals       int64           `json:"total_proposals"`
	InProgress           int64           `json:"in_progress"`
	Waiting              int64           `json:"waiting"`
	Completed            int64           `json:"completed"`
	TotalBudget          decimal.Decimal `json:"total_budget"`
	TotalBudgetFormatted string          `json:"total_budget_formatted"`
}

type MonthlyBreakdown struct {
	InProgress int64 `json:"in_progress"`
	Waiting    int64 `json:"waiting"`
	Done       int64 `json:"done"`
}

type MonthlyStat struct {
	Month       string           `json:"month"` // YYYY-MM
	Label       string           `json:"label"` // mis. "Mar 2025"
	Breakdown   MonthlyBreakdown `json:"breakdown"`
	Total       int64            `json:"total"`
	TotalBudget decimal.Decimal  `json:"total_budget"`
}

type PeriodInfo struct {
	Year  int    `json:"year,omitempty"`
	Month int    `json:"month,omitempty"`
	Label string `json:"label"`
}

type DashboardStats struct {
	Period  PeriodInfo    `json:"period"`
	Summary StatsSummary  `json:"summary"`
	Monthly []MonthlyStat `json:"monthly"`
}
