package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/finegraphics/printstore/internal/hash"
	"github.com/finegraphics/printstore/internal/models"
	"github.com/finegraphics/printstore/internal/repo"
	"github.com/finegraphics/printstore/internal/transport"
)

const accessTokenTTL = 15 * time.Minute

type AuthService struct {
	Users     *repo.UserRepo
	Admins    *repo.AdminRepo
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	if _, err := s.Users.GetByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
	}
	if err := s.Users.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks the password and issues a short-lived access token.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*models.User, string, error) {
	user, err := s.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: invalid username or password", ErrValidation)
		}
		return nil, "", err
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, "", fmt.Errorf("%w: invalid username or password", ErrValidation)
	}

	token, err := s.issueToken(user.Username, "user")
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// AdminLogin authenticates against the separate admin store.
func (s *AuthService) AdminLogin(ctx context.Context, req transport.LoginRequest) (*models.AdminUser, string, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	admin, err := s.Admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: invalid username or password", ErrValidation)
		}
		return nil, "", err
	}
	if !hash.CheckPassword(admin.PasswordHash, req.Password) {
		return nil, "", fmt.Errorf("%w: invalid username or password", ErrValidation)
	}

	token, err := s.issueToken(admin.Username, "admin")
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, req transport.UpdateProfileRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	user, err := s.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, req.Username)
		}
		return nil, err
	}

	user.Address = req.Address
	user.Mobile = req.Mobile
	user.District = req.District
	if req.ProfilePic != "" {
		user.ProfilePic = req.ProfilePic
	}
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueToken(subject, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}
