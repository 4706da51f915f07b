package service

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateCaseID -> "CSR-<tahun>-<000..999>". Tidak dijamin unik.
func GenerateCaseID(now time.Time) string {
	return fmt.Sprintf("CSR-%d-%03d", now.Year(), rand.Intn(1000))
}
