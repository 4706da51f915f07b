package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"csr_backend/internals/constants"
	"csr_backend/internals/features/users/auth/dto"
	"csr_backend/internals/features/users/user/model"
	helper "csr_backend/internals/helpers"
)

const accessTTLDefault = 24 * time.Hour

// GoogleIdentity hasil verifikasi id_token Google.
type GoogleIdentity struct {
	Email string
	Name  string
	Sub   string
}

type GoogleVerifier func(idToken, clientID string) (*GoogleIdentity, error)

type AuthService struct {
	DB             *gorm.DB
	Secret         string
	TTL            time.Duration
	GoogleClientID string
	VerifyGoogle   GoogleVerifier
	Now            func() time.Time
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration, googleClientID string) *AuthService {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return &AuthService{
		DB:             db,
		Secret:         secret,
		TTL:            ttl,
		GoogleClientID: googleClientID,
		VerifyGoogle:   verifyGoogleIDToken,
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

/* ==========================
   LOGIN (email + password), khusus admin
========================== */

func (s *AuthService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Normalize()
	if err := helper.Validate.Struct(&in); err != nil {
		return nil, helper.ValidationFailure(err)
	}

	user, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
		}
		return nil, err
	}
	if err := CheckPasswordHash(user.Password, in.Password); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
	}
	if user.Role != constants.RoleAdmin {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya admin yang dapat login")
	}

	log.Printf("[AUTH][LOGIN] user_id=%d", user.ID)
	return s.issue(user)
}

/* ==========================
   REGISTER
========================== */

func (s *AuthService) Register(ctx context.Context, in dto.RegisterRequest) (*model.UserModel, error) {
	in.Normalize()
	if err := helper.Validate.Struct(&in); err != nil {
		return nil, helper.ValidationFailure(err)
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.UserModel{
		Email:    in.Email,
		Password: hashed,
		Role:     constants.RoleUser,
	}
	if in.Name != "" {
		user.Name = &in.Name
	}

	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Email sudah terdaftar")
		}
		log.Printf("[AUTH][REGISTER] create error: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat user")
	}

	log.Printf("[AUTH][REGISTER] user_id=%d", user.ID)
	return &user, nil
}

/* ==========================
   LOGIN GOOGLE: hanya admin yang sudah terdaftar
========================== */

func (s *AuthService) LoginGoogle(ctx context.Context, in dto.GoogleLoginRequest) (*dto.LoginResponse, error) {
	if err := helper.Validate.Struct(&in); err != nil {
		return nil, helper.ValidationFailure(err)
	}
	if s.GoogleClientID == "" {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Login Google belum dikonfigurasi")
	}

	identity, err := s.VerifyGoogle(in.IDToken, s.GoogleClientID)
	if err != nil {
		log.Printf("[AUTH][GOOGLE] verify error: %v", err)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Google ID Token tidak valid")
	}

	user, err := s.findByEmail(ctx, strings.ToLower(strings.TrimSpace(identity.Email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Akun Google belum terdaftar")
	}
	if err != nil {
		return nil, err
	}
	if user.Role != constants.RoleAdmin {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya admin yang dapat login")
	}

	log.Printf("[AUTH][GOOGLE] user_id=%d sub=%s", user.ID, identity.Sub)
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, id uint) (*model.UserModel, error) {
	var user model.UserModel
	err := s.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return &user, nil
}

func (s *AuthService) issue(user *model.UserModel) (*dto.LoginResponse, error) {
	if strings.TrimSpace(s.Secret) == "" {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	token, exp, err := IssueAccessToken(user, s.Secret, s.TTL, s.Now())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: exp, User: dto.FromUser(user)}, nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var user model.UserModel
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func verifyGoogleIDToken(idToken, clientID string) (*GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &GoogleIdentity{Email: claimSet.Email, Name: claimSet.Name, Sub: claimSet.Sub}, nil
}
