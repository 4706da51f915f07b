package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "csr_backend/internals/databases"
	"csr_backend/internals/features/csr/proposals/dto"
)

var (
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
	monthPattern = regexp.MustCompile(`^\d{1,2}$`)
)

// Nama bulan id-ID.
var (
	monthShortID = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}
	monthLongID  = [...]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"}
)

// PeriodFilter hasil resolve ?month=&year=. Nol = tanpa filter.
type PeriodFilter struct {
	Year  int
	Month int
}

// ResolvePeriod: tanpa param -> semua data; year saja -> setahun; month+year -> sebulan.
// month tanpa year diabaikan. Format salah -> 400.
func ResolvePeriod(month, year string) (PeriodFilter, error) {
	month = strings.TrimSpace(month)
	year = strings.TrimSpace(year)

	var f PeriodFilter
	if year != "" {
		if !yearPattern.MatchString(year) {
			return PeriodFilter{}, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Parameter year %q tidak valid, gunakan 4 digit (mis. 2025)", year))
		}
		f.Year, _ = strconv.Atoi(year)
	}

	if month != "" {
		m, err := strconv.Atoi(month)
		if !monthPattern.MatchString(month) || err != nil || m < 1 || m > 12 {
			return PeriodFilter{}, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Parameter month %q tidak valid, gunakan 1-12", month))
		}
		if f.Year != 0 {
			f.Month = m
		}
	}
	return f, nil
}

func (f PeriodFilter) IsZero() bool { return f.Year == 0 }

// Apply menambahkan predicate tahun/bulan pada dateExpr.
func (f PeriodFilter) Apply(db *gorm.DB, dateExpr string) *gorm.DB {
	if f.Year == 0 {
		return db
	}
	d := database.DateSQLFor(db)
	db = db.Where(d.Year(dateExpr)+" = ?", f.Year)
	if f.Month > 0 {
		db = db.Where(d.Month(dateExpr)+" = ?", f.Month)
	}
	return db
}

func (f PeriodFilter) Label() string {
	switch {
	case f.Year == 0:
		return "Semua periode"
	case f.Month == 0:
		return strconv.Itoa(f.Year)
	default:
		return fmt.Sprintf("%s %d", monthLongID[f.Month-1], f.Year)
	}
}

func (f PeriodFilter) Info() dto.PeriodInfo {
	return dto.PeriodInfo{Year: f.Year, Month: f.Month, Label: f.Label()}
}

// MonthLabel "2025-03" -> "Mar 2025". Key tidak dikenal dikembalikan apa adanya.
func MonthLabel(key string) string {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return key
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return key
	}
	return monthShortID[m-1] + " " + parts[0]
}
