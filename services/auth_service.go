package services

import (
	"errors"
	"strings"
	"time"

	"github.com/fabiomatricardi/cm-log-system/entity"
	"github.com/fabiomatricardi/cm-log-system/repository"
	"github.com/fabiomatricardi/cm-log-system/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles admin panel login.
type AuthService struct {
	adminRepo *repository.AdminRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.AdminRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		adminRepo: repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Login checks the password and issues a token.
func (s *AuthService) Login(username, password string) (string, *entity.Admin, error) {
	admin, err := s.adminRepo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(admin.Username, admin.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, admin, nil
}
