package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"editorial/models"
	"editorial/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// spendPasswordCheck burns the same bcrypt work as a real comparison so an
// unknown email takes as long as a wrong password.
func spendPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("editorial-dummy-password"), models.BcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login returns the admin and a signed session token. Unknown, inactive and
// wrong-password cases all fail with utils.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.Admin, string, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", utils.NewValidationError("Email & password required", nil)
	}
	if s.jwtSecret == "" {
		return nil, "", utils.NewConfigurationError("Missing JWT_SECRET")
	}

	var admin models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		if !isNotFound(err) {
			return nil, "", fmt.Errorf("find admin: %w", err)
		}
		spendPasswordCheck(req.Password)
		return nil, "", utils.ErrInvalidCredentials
	}

	if !admin.CheckPassword(req.Password) || !admin.IsActive {
		return nil, "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateAdminJWT(s.jwtSecret, admin.ID)
	if err != nil {
		return nil, "", utils.NewServerError("Failed to generate token", err)
	}
	return &admin, token, nil
}

// Authenticate checks a session token and returns the admin id it names.
func (s *AuthService) Authenticate(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	claims, err := utils.ValidateAdminJWT(s.jwtSecret, token)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

func (s *AuthService) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	if !isValidID(id) {
		return nil, utils.ErrUnauthorized
	}

	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, utils.ErrUnauthorized
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	if !admin.IsActive {
		return nil, utils.ErrUnauthorized
	}
	return &admin, nil
}

// EnsureAdmin creates the admin unless one with the same email exists.
// It reports whether a new admin was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) (*models.Admin, bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, utils.NewValidationError("Email & password required", nil)
	}

	var existing models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, fmt.Errorf("find admin: %w", err)
	}

	admin := &models.Admin{Email: email, Name: strings.TrimSpace(name), IsActive: true}
	if err := admin.SetPassword(password); err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		if isDuplicate(err) {
			return nil, false, utils.NewConflictError("Admin already exists")
		}
		return nil, false, fmt.Errorf("create admin: %w", err)
	}
	return admin, true, nil
}
