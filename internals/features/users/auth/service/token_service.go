package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"csr_backend/internals/features/users/user/model"
)

// IssueAccessToken -> JWT HS256 berisi {id, email, role, iat, exp}.
func IssueAccessToken(u *model.UserModel, secret string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"role":  u.Role,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
