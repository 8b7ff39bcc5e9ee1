package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
)

// fakeNotificationRepo records notifications and signals each create
type fakeNotificationRepo struct {
	mu      sync.Mutex
	rows    []domain.Notification
	created chan struct{}
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{created: make(chan struct{}, 16)}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	f.mu.Lock()
	f.rows = append(f.rows, *n)
	f.mu.Unlock()
	f.created <- struct{}{}
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for _, n := range f.rows {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].RecipientID == recipientID {
			f.rows[i].Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

// fakeUserDirectory resolves recipients for delivery
type fakeUserDirectory struct {
	users map[string]*domain.User
}

func (f *fakeUserDirectory) Create(ctx context.Context, user *domain.User) error { return nil }

func (f *fakeUserDirectory) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserDirectory) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserDirectory) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func waitForCreate(t *testing.T, repo *fakeNotificationRepo) {
	t.Helper()
	select {
	case <-repo.created:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification delivery")
	}
}

func TestNotificationService_VoteCast(t *testing.T) {
	ctx := context.Background()

	owner := &domain.User{ID: uuid.NewString(), Email: "owner@example.com", NotificationEnabled: true}
	poll := &domain.Poll{ID: uuid.NewString(), Title: "Favorite language?", CreatedBy: owner.ID}

	t.Run("vote by another user notifies the owner", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewNotificationService(repo, &fakeUserDirectory{users: map[string]*domain.User{owner.ID: owner}},
			&LogEmailSender{Logger: zap.NewNop()}, zap.NewNop())

		actorID := uuid.NewString()
		svc.VoteCast(poll, domain.VoterIdentity{UserID: actorID})
		waitForCreate(t, repo)

		rows, err := svc.List(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, poll.ID, rows[0].TargetID)
		require.NotNil(t, rows[0].ActorUserID)
		assert.Equal(t, actorID, *rows[0].ActorUserID)
		assert.False(t, rows[0].Read)
	})

	t.Run("anonymous vote has no actor attribution", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewNotificationService(repo, &fakeUserDirectory{users: map[string]*domain.User{owner.ID: owner}},
			&LogEmailSender{Logger: zap.NewNop()}, zap.NewNop())

		svc.VoteCast(poll, domain.VoterIdentity{IP: "203.0.113.7"})
		waitForCreate(t, repo)

		rows, err := svc.List(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].ActorUserID)
	})

	t.Run("self-vote is skipped", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewNotificationService(repo, &fakeUserDirectory{users: map[string]*domain.User{owner.ID: owner}},
			&LogEmailSender{Logger: zap.NewNop()}, zap.NewNop())

		svc.VoteCast(poll, domain.VoterIdentity{UserID: owner.ID})

		select {
		case <-repo.created:
			t.Fatal("self-vote must not produce a notification")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("muted recipient gets nothing", func(t *testing.T) {
		muted := &domain.User{ID: uuid.NewString(), NotificationEnabled: false}
		mutedPoll := &domain.Poll{ID: uuid.NewString(), CreatedBy: muted.ID}

		repo := newFakeNotificationRepo()
		svc := NewNotificationService(repo, &fakeUserDirectory{users: map[string]*domain.User{muted.ID: muted}},
			&LogEmailSender{Logger: zap.NewNop()}, zap.NewNop())

		svc.VoteCast(mutedPoll, domain.VoterIdentity{UserID: uuid.NewString()})

		select {
		case <-repo.created:
			t.Fatal("muted recipient must not receive a notification")
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()

	owner := &domain.User{ID: uuid.NewString(), NotificationEnabled: true}
	poll := &domain.Poll{ID: uuid.NewString(), CreatedBy: owner.ID}

	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, &fakeUserDirectory{users: map[string]*domain.User{owner.ID: owner}},
		&LogEmailSender{Logger: zap.NewNop()}, zap.NewNop())

	svc.VoteCast(poll, domain.VoterIdentity{UserID: uuid.NewString()})
	waitForCreate(t, repo)

	rows, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, svc.MarkRead(ctx, rows[0].ID, owner.ID))

	rows, err = svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, rows[0].Read)

	// Another user cannot mark it
	err = svc.MarkRead(ctx, rows[0].ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}
