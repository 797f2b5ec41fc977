package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/auth"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenIssuer creates access tokens for users.
type TokenIssuer interface {
	GenerateAccessToken(user *models.User) (string, int64, error)
}

// AuthService handles authentication operations
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	logger zerolog.Logger
	now    func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperrors.NewValidationError("fullName", "Full name cannot be empty")
	}

	email := models.NormalizeEmail(req.Email)
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		CollegeName:  strings.TrimSpace(req.CollegeName),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID.String()).Msg("User registered")
	return s.issue(user)
}

// Login verifies credentials and returns a fresh access token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, models.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Str("userID", user.ID.String()).Msg("Password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me returns the profile of the signed-in user.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.FromUser(user),
	}, nil
}
