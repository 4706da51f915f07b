package database

import (
	"fmt"

	"gorm.io/gorm"
)

// DateSQL merender ekspresi tanggal sesuai dialek koneksi aktif.
type DateSQL struct {
	dialect string
}

func DateSQLFor(db *gorm.DB) DateSQL {
	return DateSQL{dialect: db.Dialector.Name()}
}

func (d DateSQL) Dialect() string { return d.dialect }

// Year -> integer tahun dari expr.
func (d DateSQL) Year(expr string) string {
	if d.dialect == "sqlite" {
		return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", expr)
	}
	return fmt.Sprintf("CAST(EXTRACT(YEAR FROM %s) AS INTEGER)", expr)
}

// Month -> integer bulan (1-12) dari expr.
func (d DateSQL) Month(expr string) string {
	if d.dialect == "sqlite" {
		return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", expr)
	}
	return fmt.Sprintf("CAST(EXTRACT(MONTH FROM %s) AS INTEGER)", expr)
}

// MonthKey -> string "YYYY-MM".
func (d DateSQL) MonthKey(expr string) string {
	if d.dialect == "sqlite" {
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", expr)
	}
	return fmt.Sprintf("to_char(%s, 'YYYY-MM')", expr)
}
