package auth

import (
	"context"
	"errors"

	"voicelens/internal/features/audit"
	"voicelens/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Login verifies credentials against the profiles table and returns a
	// signed session token. Any failure collapses to a generic message so
	// credentials cannot be probed.
	Login(ctx context.Context, email, password string) (string, *Profile, error)
}

type AuthServiceImpl struct {
	ProfileRepo  ProfileRepository
	AuditService audit.AuditService
}

func NewAuthService(profileRepo ProfileRepository, auditService audit.AuditService) AuthService {
	return &AuthServiceImpl{
		ProfileRepo:  profileRepo,
		AuditService: auditService,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	profile, err := s.ProfileRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(profile.ID, profile.CompanyID, profile.Role)
	if err != nil {
		return "", nil, err
	}

	s.AuditService.LogChange(ctx, audit.ActionLogin, profile.CompanyID, profile.ID, map[string]interface{}{
		"role": profile.Role,
	})

	return token, profile, nil
}
