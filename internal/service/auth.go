package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studysphere/backend/internal/auth"
	"github.com/studysphere/backend/internal/domain"
	"github.com/studysphere/backend/internal/event"
	"github.com/studysphere/backend/internal/repository"
	apperrors "github.com/studysphere/backend/pkg/errors"
)

// AuthService implements registration, login and token refresh.
type AuthService struct {
	accounts repository.AccountRepository
	tokens   *auth.TokenService
	producer *event.Producer
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	accounts repository.AccountRepository,
	tokens *auth.TokenService,
	producer *event.Producer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokens:   tokens,
		producer: producer,
		logger:   logger,
	}
}

// RegisterInput holds the parameters for registering a new account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// LoginInput holds the parameters for logging in.
type LoginInput struct {
	Email    string
	Password string
}

// Register creates a new account, hashes the password, and returns tokens.
// Validation failures are cumulative: every violated rule is reported in a
// single message so the client can fix them all at once.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.TokenPair, error) {
	var validationErrs []string

	if !isValidEmail(input.Email) {
		validationErrs = append(validationErrs, "Invalid email format")
	}
	if msg := validateUsername(input.Username); msg != "" {
		validationErrs = append(validationErrs, msg)
	}
	validationErrs = append(validationErrs, validatePasswordStrength(input.Password)...)

	if len(validationErrs) > 0 {
		return nil, nil, apperrors.Validation(strings.Join(validationErrs, ", "))
	}

	email := normalizeEmail(input.Email)

	// Pre-checks give friendly messages; the unique constraints in storage
	// remain the final authority under concurrent registration.
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.Validation("Email already registered")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("check email: %w", err)
	}

	if _, err := s.accounts.GetByUsername(ctx, input.Username); err == nil {
		return nil, nil, apperrors.Validation("Username already taken")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accounts.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, nil, apperrors.Validation("Email already registered")
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	tokens, err := s.generateTokenPair(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, tokens, nil
}

// Login authenticates a user by email and password, returning tokens.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, *domain.TokenPair, error) {
	if !isValidEmail(input.Email) {
		return nil, nil, apperrors.Validation("Invalid email format")
	}

	user, err := s.accounts.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.Validation("User not found")
		}
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, nil, apperrors.Validation("Invalid password")
	}

	tokens, err := s.generateTokenPair(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, tokens, nil
}

// Refresh validates a refresh token and issues a fresh token pair. The prior
// refresh token stays valid until its own expiry; there is no rotation store.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("Unauthorized")
	}

	userID, err := claims.SubjectID()
	if err != nil {
		return nil, apperrors.Unauthorized("Unauthorized")
	}

	// The subject must still exist; a deleted account cannot mint new tokens.
	if _, err := s.accounts.GetByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Unauthorized")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	tokens, err := s.generateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	return tokens, nil
}

// CurrentUser returns the account for an authenticated subject.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Unauthorized")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func (s *AuthService) generateTokenPair(userID string) (*domain.TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
