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

	"github.com/olumbah1/alx-project-nexus/internal/config"
	"github.com/olumbah1/alx-project-nexus/internal/domain"
	apperrors "github.com/olumbah1/alx-project-nexus/pkg/errors"
)

// fakeTaxonomyRepo serves categories and campaigns from memory
type fakeTaxonomyRepo struct {
	mu         sync.Mutex
	categories map[string]domain.Category
	campaigns  map[string]domain.Campaign
}

func newFakeTaxonomyRepo() *fakeTaxonomyRepo {
	return &fakeTaxonomyRepo{
		categories: make(map[string]domain.Category),
		campaigns:  make(map[string]domain.Campaign),
	}
}

func (f *fakeTaxonomyRepo) CreateCategory(ctx context.Context, c *domain.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeTaxonomyRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeTaxonomyRepo) CategoryExists(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.categories[id]
	return ok, nil
}

func (f *fakeTaxonomyRepo) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.campaigns[c.ID] = *c
	return nil
}

func (f *fakeTaxonomyRepo) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Campaign, 0, len(f.campaigns))
	for _, c := range f.campaigns {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeTaxonomyRepo) CampaignExists(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.campaigns[id]
	return ok, nil
}

func newPollFixture(t *testing.T) (*PollService, *fakePollRepo, *fakeTaxonomyRepo) {
	t.Helper()
	pollRepo := newFakePollRepo()
	taxRepo := newFakeTaxonomyRepo()
	cache := NewCacheService(nil, config.CacheTTL{}, zap.NewNop())
	svc := NewPollService(pollRepo, taxRepo, cache, NopNotifier{}, zap.NewNop())
	return svc, pollRepo, taxRepo
}

func TestPollService_CreatePoll(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.NewString()

	t.Run("creates poll with ordered options", func(t *testing.T) {
		svc, pollRepo, _ := newPollFixture(t)

		poll, err := svc.CreatePoll(ctx, &domain.CreatePollRequest{
			Title:   "Favorite language?",
			Options: []string{"Go", "Rust", "Zig"},
		}, creatorID)

		require.NoError(t, err)
		assert.Equal(t, creatorID, poll.CreatedBy)
		assert.True(t, poll.IsActive)
		assert.False(t, poll.AllowMultipleVotes)
		require.Len(t, poll.Options, 3)
		for i, opt := range poll.Options {
			assert.Equal(t, i, opt.DisplayOrder)
			assert.Equal(t, poll.ID, opt.PollID)
			assert.Zero(t, opt.VoteCount)
		}

		stored, err := pollRepo.GetPoll(ctx, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, poll.Title, stored.Title)
	})

	t.Run("validation failures", func(t *testing.T) {
		svc, _, _ := newPollFixture(t)
		past := time.Now().Add(-time.Hour)

		tests := []struct {
			name string
			req  *domain.CreatePollRequest
		}{
			{
				name: "missing title",
				req:  &domain.CreatePollRequest{Options: []string{"A", "B"}},
			},
			{
				name: "single option",
				req:  &domain.CreatePollRequest{Title: "T", Options: []string{"A"}},
			},
			{
				name: "empty option text",
				req:  &domain.CreatePollRequest{Title: "T", Options: []string{"A", "  "}},
			},
			{
				name: "duplicate option text",
				req:  &domain.CreatePollRequest{Title: "T", Options: []string{"A", "A"}},
			},
			{
				name: "expiry in the past",
				req:  &domain.CreatePollRequest{Title: "T", Options: []string{"A", "B"}, ExpiresAt: &past},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.CreatePoll(ctx, tt.req, creatorID)
				require.Error(t, err)

				var appErr *apperrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			})
		}
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		svc, _, _ := newPollFixture(t)
		missing := uuid.NewString()

		_, err := svc.CreatePoll(ctx, &domain.CreatePollRequest{
			Title:      "T",
			Options:    []string{"A", "B"},
			CategoryID: &missing,
		}, creatorID)
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})

	t.Run("known category is accepted", func(t *testing.T) {
		svc, _, taxRepo := newPollFixture(t)
		cat := domain.Category{ID: uuid.NewString(), Title: "Technology"}
		require.NoError(t, taxRepo.CreateCategory(ctx, &cat))

		poll, err := svc.CreatePoll(ctx, &domain.CreatePollRequest{
			Title:      "T",
			Options:    []string{"A", "B"},
			CategoryID: &cat.ID,
		}, creatorID)
		require.NoError(t, err)
		require.NotNil(t, poll.CategoryID)
		assert.Equal(t, cat.ID, *poll.CategoryID)
	})
}

func TestPollService_GetPoll(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown poll", func(t *testing.T) {
		svc, _, _ := newPollFixture(t)
		_, err := svc.GetPoll(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrPollNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _, _ := newPollFixture(t)
		_, err := svc.GetPoll(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrPollNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		svc, _, _ := newPollFixture(t)

		created, err := svc.CreatePoll(ctx, &domain.CreatePollRequest{
			Title:   "T",
			Options: []string{"A", "B"},
		}, uuid.NewString())
		require.NoError(t, err)

		got, err := svc.GetPoll(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Len(t, got.Options, 2)
	})
}
