package helper

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const CurrencyIDR = money.IDR

// FormatIDR menampilkan nominal rupiah, mis. "Rp1.500.000,00".
func FormatIDR(amount decimal.Decimal) string {
	cur := money.GetCurrency(CurrencyIDR)
	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0).IntPart()
	return money.New(minor, CurrencyIDR).Display()
}
