package seeds

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	categoryModel "csr_backend/internals/features/csr/categories/model"
	programModel "csr_backend/internals/features/csr/programs/model"
)

// Urutan penting: frontend lama memakai id 1=Lingkungan, 2=Pendidikan, 3=Kesehatan, 4=Ekonomi.
var DefaultCategories = []string{"Lingkungan", "Pendidikan", "Kesehatan", "Ekonomi"}

// SeedCategories insert kategori yang belum ada, dicek per nama.
func SeedCategories(ctx context.Context, db *gorm.DB) (int, error) {
	var existing []string
	if err := db.WithContext(ctx).Model(&categoryModel.Category{}).Pluck("name", &existing).Error; err != nil {
		return 0, fmt.Errorf("ambil kategori: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, n := range existing {
		have[n] = true
	}

	inserted := 0
	for _, name := range DefaultCategories {
		if have[name] {
			log.Printf("ℹ️ Kategori '%s' sudah ada, dilewati.", name)
			continue
		}
		if err := db.WithContext(ctx).Create(&categoryModel.Category{Name: name}).Error; err != nil {
			return inserted, fmt.Errorf("insert kategori %s: %w", name, err)
		}
		inserted++
	}
	log.Printf("✅ %d kategori baru", inserted)
	return inserted, nil
}

type programSeed struct {
	title, description, category, location string
	start, end                             string
	status                                 string
}

var samplePrograms = []programSeed{
	{"Program Penanaman Pohon", "Penanaman 10.000 pohon di kawasan hutan rusak", "Lingkungan", "Bogor, Jawa Barat", "2025-01-15", "2025-03-15", programModel.ProgramPlanned},
	{"Beasiswa Pendidikan", "Memberikan beasiswa kepada 100 siswa berprestasi", "Pendidikan", "Jakarta dan sekitarnya", "2025-02-01", "2025-12-31", programModel.ProgramOngoing},
	{"Klinik Kesehatan Gratis", "Layanan kesehatan gratis untuk masyarakat kurang mampu", "Kesehatan", "Bekasi", "2024-12-20", "2025-01-31", programModel.ProgramCompleted},
}

// SeedPrograms contoh program; dilewati kalau judul sudah ada.
func SeedPrograms(ctx context.Context, db *gorm.DB) (int, error) {
	inserted := 0
	for _, s := range samplePrograms {
		var n int64
		if err := db.WithContext(ctx).Model(&programModel.CsrProgram{}).Where("title = ?", s.title).Count(&n).Error; err != nil {
			return inserted, fmt.Errorf("cek program %s: %w", s.title, err)
		}
		if n > 0 {
			continue
		}

		var cat categoryModel.Category
		var catID *uint
		if err := db.WithContext(ctx).Where("name = ?", s.category).Limit(1).Find(&cat).Error; err != nil {
			return inserted, fmt.Errorf("cari kategori %s: %w", s.category, err)
		}
		if cat.ID != 0 {
			catID = &cat.ID
		}

		desc, loc := s.description, s.location
		p := programModel.CsrProgram{
			Title:       s.title,
			Description: &desc,
			CategoryID:  catID,
			Location:    &loc,
			StartDate:   mustDate(s.start),
			EndDate:     mustDate(s.end),
			Status:      s.status,
		}
		if err := db.WithContext(ctx).Create(&p).Error; err != nil {
			return inserted, fmt.Errorf("insert program %s: %w", s.title, err)
		}
		inserted++
	}
	log.Printf("✅ %d program contoh baru", inserted)
	return inserted, nil
}

func mustDate(s string) *datatypes.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	d := datatypes.Date(t)
	return &d
}
