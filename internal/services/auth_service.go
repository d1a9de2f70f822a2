package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cortexai/cortex-api/internal/auth"
	"github.com/cortexai/cortex-api/internal/common"
	"github.com/cortexai/cortex-api/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Register(ctx context.Context, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ResolveCurrentUser(ctx context.Context, token string) (models.User, error)
}

// AuthService registers users, exchanges credentials for bearer tokens and
// resolves tokens back to users.
type AuthService struct {
	users      UserServiceProvider
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserServiceProvider, tokens *auth.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

var errBadCredentials = common.Detail(common.ErrAuthentication, "Incorrect email or password")

// Register creates a new user, hashing their password.
func (s *AuthService) Register(ctx context.Context, email, password string) (models.User, error) {
	email, err := normalizeEmail(strings.TrimSpace(email))
	if err != nil {
		return models.User{}, err
	}
	if err := validateLength("password", password, MinPasswordLength, 0); err != nil {
		return models.User{}, err
	}

	_, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, common.Detail(common.ErrAlreadyExists, "Email already registered")
	case !errors.Is(err, common.ErrNotFound):
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.User{}, validationError("password must be at most 72 bytes")
		}
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.CreateUser(ctx, email, string(hashedPassword))
}

// Login verifies the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email, err := normalizeEmail(strings.TrimSpace(email))
	if err != nil {
		return "", errBadCredentials
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", errBadCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errBadCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token for user %d: %w", user.ID, err)
	}
	log.Info().Int64("user_id", user.ID).Msg("User logged in")
	return token, nil
}

// ResolveCurrentUser verifies the token and loads the user it names. The
// token is checked only by signature and expiry, so it stays usable for its
// whole lifetime even if the account changes afterwards.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, common.Detail(common.ErrAuthentication, "Not authenticated")
	}

	userID, err := s.tokens.Parse(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w",
			common.Detail(common.ErrAuthentication, "Could not validate credentials"), err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.User{}, common.Detail(common.ErrAuthentication, "Could not validate credentials")
		}
		return models.User{}, err
	}
	return user, nil
}
