package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/internal/repository"
	"github.com/olumbah1/alx-project-nexus/internal/service"
	"github.com/olumbah1/alx-project-nexus/pkg/errors"
	"github.com/olumbah1/alx-project-nexus/pkg/logger"
	"github.com/olumbah1/alx-project-nexus/pkg/redis"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	minPasswordLength = 8
)

// claims are the JWT claims issued by this service
type claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Service implements service.AuthService with first-party HS256 JWTs.
type Service struct {
	userRepo   repository.UserRepository
	redis      *redis.Client
	email      service.EmailSender
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *logger.Logger
}

// NewService creates a new auth service. redisClient may be nil; password
// reset then degrades to an unavailable feature rather than failing boot.
func NewService(
	userRepo repository.UserRepository,
	redisClient *redis.Client,
	email service.EmailSender,
	secret string,
	accessTTL, refreshTTL time.Duration,
	log *logger.Logger,
) *Service {
	return &Service{
		userRepo:   userRepo,
		redis:      redisClient,
		email:      email,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     log,
	}
}

// Signup registers a user and issues an initial token pair.
func (s *Service) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.User, *domain.TokenPair, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, nil, errors.NewValidationError("username is required", nil)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, nil, errors.NewValidationError("a valid email is required", nil)
	}
	if len(req.Password) < minPasswordLength {
		return nil, nil, errors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", minPasswordLength), nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:                  uuid.NewString(),
		Username:            username,
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:        string(hash),
		NotificationEnabled: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")

	return user, tokens, nil
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same error for unknown email and wrong password
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueTokenPair(user.ID)
}

// Refresh exchanges a refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	parsed, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	// The account must still exist before new tokens are minted
	if _, err := s.userRepo.GetByID(ctx, parsed.Subject); err != nil {
		return nil, errors.NewAuthenticationError("invalid refresh token")
	}

	return s.issueTokenPair(parsed.Subject)
}

// ForgotPassword issues a one-time reset token and mails it. Always
// succeeds from the caller's perspective so account existence is not leaked.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil
	}

	if s.redis == nil {
		s.logger.Warn("password reset requested but no redis backend is configured")
		return nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	key := s.redis.KeyBuilder.KeyPasswordReset(token)
	if err := s.redis.Set(ctx, key, user.ID, redis.TTLPasswordReset); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.email.Send(ctx, user.Email, "Password reset",
		fmt.Sprintf("Use this token to reset your password: %s", token)); err != nil {
		s.logger.WithError(err).Warn("failed to send password reset email")
	}

	return nil
}

// ResetPassword consumes a reset token and sets a new password. The token is
// removed atomically with the read so it can be used exactly once.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return errors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", minPasswordLength), nil)
	}
	if s.redis == nil {
		return domain.ErrInvalidResetToken
	}

	key := s.redis.KeyBuilder.KeyPasswordReset(token)
	userID, err := s.redis.GetDel(ctx, key)
	if err != nil || userID == "" {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.logger.WithField("user_id", userID).Info("password reset completed")
	return nil
}

// ValidateAccessToken checks an access token and returns the user id.
func (s *Service) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	parsed, err := s.parseToken(token, tokenTypeAccess)
	if err != nil {
		return "", err
	}
	return parsed.Subject, nil
}

// GetProfile loads the account behind a user id.
func (s *Service) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *Service) issueTokenPair(userID string) (*domain.TokenPair, error) {
	access, err := s.signToken(userID, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(userID, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *Service) signToken(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) parseToken(tokenString, wantType string) (*claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.NewAuthenticationError("invalid or expired token")
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, errors.NewAuthenticationError("invalid or expired token")
	}
	if c.TokenType != wantType {
		return nil, errors.NewAuthenticationError("wrong token type")
	}
	if c.Subject == "" {
		return nil, errors.NewAuthenticationError("token has no subject")
	}

	return c, nil
}
