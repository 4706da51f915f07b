package seeds

import (
	"context"
	"log"

	"gorm.io/gorm"
)

// Options untuk RunAll; field kosong pakai default.
type Options struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	WithPrograms  bool
}

// RunAll: admin -> kategori -> (opsional) program contoh. Aman dijalankan berulang.
func RunAll(ctx context.Context, db *gorm.DB, opt Options) error {
	if opt.AdminEmail == "" {
		opt.AdminEmail = DefaultAdminEmail
	}
	if opt.AdminPassword == "" {
		opt.AdminPassword = DefaultAdminPassword
	}
	if opt.AdminName == "" {
		opt.AdminName = DefaultAdminName
	}

	log.Println("🔄 Seeding database...")
	if _, _, err := SeedAdmin(ctx, db, opt.AdminEmail, opt.AdminPassword, opt.AdminName); err != nil {
		return err
	}
	if _, err := SeedCategories(ctx, db); err != nil {
		return err
	}
	if opt.WithPrograms {
		if _, err := SeedPrograms(ctx, db); err != nil {
			return err
		}
	}
	log.Println("✅ Seed selesai")
	return nil
}
