package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/pkg/logger"
	"github.com/olumbah1/alx-project-nexus/pkg/redis"
)

// fakeUserRepo keeps accounts in memory
type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.byEmail[user.Email]; taken {
		return domain.ErrEmailTaken
	}
	cp := *user
	f.byID[user.ID] = &cp
	f.byEmail[user.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// recordingEmailSender captures the last email instead of sending it
type recordingEmailSender struct {
	mu   sync.Mutex
	to   string
	body string
}

func (r *recordingEmailSender) Send(ctx context.Context, to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.to = to
	r.body = body
	return nil
}

func newAuthFixture(t *testing.T) (*Service, *fakeUserRepo, *recordingEmailSender, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	redisClient, err := redis.NewClient("redis://"+mr.Addr(), "test", logger.NewNop().Logger)
	require.NoError(t, err)
	t.Cleanup(func() { redisClient.Close() })

	userRepo := newFakeUserRepo()
	email := &recordingEmailSender{}
	svc := NewService(userRepo, redisClient, email, "test-secret",
		30*time.Minute, 7*24*time.Hour, logger.NewNop())

	return svc, userRepo, email, mr
}

func signupTestUser(t *testing.T, svc *Service) (*domain.User, *domain.TokenPair) {
	t.Helper()
	user, tokens, err := svc.Signup(context.Background(), &domain.SignupRequest{
		Username: "voter",
		Email:    "voter@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user, tokens
}

func TestService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a working token pair", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)

		user, tokens := signupTestUser(t, svc)
		assert.Equal(t, "voter@example.com", user.Email)
		assert.True(t, user.NotificationEnabled)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "correct-horse", user.PasswordHash)
		require.NotEmpty(t, tokens.Access)
		require.NotEmpty(t, tokens.Refresh)

		subject, err := svc.ValidateAccessToken(ctx, tokens.Access)
		require.NoError(t, err)
		assert.Equal(t, user.ID, subject)
	})

	t.Run("email is normalized to lower case", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)

		user, _, err := svc.Signup(ctx, &domain.SignupRequest{
			Username: "voter",
			Email:    "Voter@Example.COM",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, "voter@example.com", user.Email)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)

		tests := []struct {
			name string
			req  *domain.SignupRequest
		}{
			{"missing username", &domain.SignupRequest{Email: "a@b.com", Password: "correct-horse"}},
			{"bad email", &domain.SignupRequest{Username: "u", Email: "not-an-email", Password: "correct-horse"}},
			{"short password", &domain.SignupRequest{Username: "u", Email: "a@b.com", Password: "short"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := svc.Signup(ctx, tt.req)
				assert.Error(t, err)
			})
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)
		signupTestUser(t, svc)

		_, _, err := svc.Signup(ctx, &domain.SignupRequest{
			Username: "other",
			Email:    "voter@example.com",
			Password: "correct-horse",
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture(t)
	user, _ := signupTestUser(t, svc)

	t.Run("valid credentials", func(t *testing.T) {
		tokens, err := svc.Login(ctx, &domain.LoginRequest{
			Email:    "voter@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)

		subject, err := svc.ValidateAccessToken(ctx, tokens.Access)
		require.NoError(t, err)
		assert.Equal(t, user.ID, subject)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, errWrongPassword := svc.Login(ctx, &domain.LoginRequest{
			Email:    "voter@example.com",
			Password: "wrong-password",
		})
		_, errUnknownEmail := svc.Login(ctx, &domain.LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})

		assert.ErrorIs(t, errWrongPassword, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownEmail, domain.ErrInvalidCredentials)
	})
}

func TestService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture(t)
	user, tokens := signupTestUser(t, svc)

	t.Run("refresh token mints a new pair", func(t *testing.T) {
		fresh, err := svc.Refresh(ctx, tokens.Refresh)
		require.NoError(t, err)

		subject, err := svc.ValidateAccessToken(ctx, fresh.Access)
		require.NoError(t, err)
		assert.Equal(t, user.ID, subject)
	})

	t.Run("access token is not accepted as refresh", func(t *testing.T) {
		_, err := svc.Refresh(ctx, tokens.Access)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not.a.jwt")
		assert.Error(t, err)
	})
}

func TestService_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthFixture(t)
	_, tokens := signupTestUser(t, svc)

	t.Run("refresh token is not accepted as access", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(ctx, tokens.Refresh)
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewService(newFakeUserRepo(), nil, &recordingEmailSender{}, "other-secret",
			time.Minute, time.Hour, logger.NewNop())
		foreign, err := other.issueTokenPair(uuid.NewString())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(ctx, foreign.Access)
		assert.Error(t, err)
	})
}

func TestService_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("full reset flow", func(t *testing.T) {
		svc, _, email, _ := newAuthFixture(t)
		signupTestUser(t, svc)

		require.NoError(t, svc.ForgotPassword(ctx, "voter@example.com"))
		require.Equal(t, "voter@example.com", email.to)

		// The token is the last word of the email body
		parts := strings.Fields(email.body)
		token := parts[len(parts)-1]
		require.NotEmpty(t, token)

		require.NoError(t, svc.ResetPassword(ctx, token, "new-password-1"))

		// Old password no longer works, new one does
		_, err := svc.Login(ctx, &domain.LoginRequest{Email: "voter@example.com", Password: "correct-horse"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

		_, err = svc.Login(ctx, &domain.LoginRequest{Email: "voter@example.com", Password: "new-password-1"})
		assert.NoError(t, err)

		// The token was consumed on first use
		err = svc.ResetPassword(ctx, token, "another-password")
		assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
	})

	t.Run("unknown email does not leak account existence", func(t *testing.T) {
		svc, _, email, _ := newAuthFixture(t)

		require.NoError(t, svc.ForgotPassword(ctx, "nobody@example.com"))
		assert.Empty(t, email.to)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)

		err := svc.ResetPassword(ctx, "bogus-token", "new-password-1")
		assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
	})

	t.Run("short replacement password", func(t *testing.T) {
		svc, _, _, _ := newAuthFixture(t)

		err := svc.ResetPassword(ctx, "whatever", "short")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidResetToken)
	})
}
