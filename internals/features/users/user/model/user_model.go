package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"csr_backend/internals/constants"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	Name      *string   `gorm:"column:name;size:255" json:"name"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) DisplayName() string {
	if u.Name != nil {
		return *u.Name
	}
	return ""
}

// BeforeSave: role kosong jadi user, role di luar daftar ditolak.
func (u *UserModel) BeforeSave(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = constants.RoleUser
	}
	if !constants.IsValidRole(u.Role) {
		return fmt.Errorf("role %q tidak dikenal", u.Role)
	}
	return nil
}
