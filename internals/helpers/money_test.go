package helper

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatIDR(t *testing.T) {
	got := FormatIDR(decimal.RequireFromString("1500000"))
	if !strings.Contains(got, "Rp") || !strings.Contains(got, "1.500.000") {
		t.Fatalf("FormatIDR = %q", got)
	}
	if zero := FormatIDR(decimal.Zero); !strings.Contains(zero, "0") {
		t.Fatalf("FormatIDR(0) = %q", zero)
	}
}
