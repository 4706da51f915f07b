package model_test

import (
	"testing"

	"csr_backend/internals/constants"
	"csr_backend/internals/databases/testdb"
	"csr_backend/internals/features/users/user/model"
)

func TestUserRoleGuard(t *testing.T) {
	db := testdb.New(t)

	u := model.UserModel{Email: "a@csr.com", Password: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create without role: %v", err)
	}
	if u.Role != constants.RoleUser {
		t.Errorf("default role = %q", u.Role)
	}

	bad := model.UserModel{Email: "b@csr.com", Password: "x", Role: "owner"}
	if err := db.Create(&bad).Error; err == nil {
		t.Fatal("unknown role accepted")
	}
	var n int64
	db.Model(&model.UserModel{}).Where("email = ?", "b@csr.com").Count(&n)
	if n != 0 {
		t.Errorf("row with unknown role stored")
	}

	u.Role = "superadmin"
	if err := db.Save(&u).Error; err == nil {
		t.Fatal("save with unknown role accepted")
	}
}
