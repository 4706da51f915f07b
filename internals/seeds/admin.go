package seeds

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"csr_backend/internals/constants"
	authService "csr_backend/internals/features/users/auth/service"
	"csr_backend/internals/features/users/user/model"
)

const (
	DefaultAdminEmail    = "admin@csr.com"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Admin User"
)

// SeedAdmin buat user admin kalau email belum terdaftar.
// User yang sudah ada tidak disentuh (password & role tetap).
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (*model.UserModel, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, false, errors.New("email dan password admin wajib diisi")
	}

	var existing model.UserModel
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", email)
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("cek user %s: %w", email, err)
	}

	// 🔐 Hash password sebelum disimpan
	hashed, err := authService.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	u := model.UserModel{Email: email, Password: hashed, Role: constants.RoleAdmin}
	if n := strings.TrimSpace(name); n != "" {
		u.Name = &n
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, false, fmt.Errorf("insert admin %s: %w", email, err)
	}
	log.Printf("✅ Admin %s dibuat (id=%d)", email, u.ID)
	return &u, true, nil
}
