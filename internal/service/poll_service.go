package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/internal/repository"
	"github.com/olumbah1/alx-project-nexus/pkg/errors"
)

// PollService owns the poll store: creation and cached reads. Vote casting
// and aggregation live in VotingService.
type PollService struct {
	pollRepo repository.PollRepository
	taxRepo  repository.TaxonomyRepository
	cache    *CacheService
	notifier Notifier
	logger   *zap.Logger
}

func NewPollService(
	pollRepo repository.PollRepository,
	taxRepo repository.TaxonomyRepository,
	cache *CacheService,
	notifier Notifier,
	logger *zap.Logger,
) *PollService {
	return &PollService{
		pollRepo: pollRepo,
		taxRepo:  taxRepo,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// CreatePoll validates and persists a new poll with its options.
func (s *PollService) CreatePoll(ctx context.Context, req *domain.CreatePollRequest, creatorID string) (*domain.Poll, error) {
	if err := s.validateCreate(ctx, req); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	poll := &domain.Poll{
		ID:                 uuid.NewString(),
		Title:              strings.TrimSpace(req.Title),
		Description:        strings.TrimSpace(req.Description),
		CreatedBy:          creatorID,
		CategoryID:         req.CategoryID,
		CampaignID:         req.CampaignID,
		ExpiresAt:          req.ExpiresAt,
		IsActive:           isActive,
		AllowMultipleVotes: req.AllowMultipleVotes,
	}

	for i, text := range req.Options {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:           uuid.NewString(),
			PollID:       poll.ID,
			Text:         strings.TrimSpace(text),
			DisplayOrder: i,
		})
	}

	if err := s.pollRepo.CreatePoll(ctx, poll); err != nil {
		return nil, err
	}

	s.cache.InvalidatePollList(ctx)
	s.notifier.PollCreated(poll)

	s.logger.Info("poll created",
		zap.String("poll_id", poll.ID),
		zap.String("created_by", creatorID),
		zap.Int("options", len(poll.Options)))

	return poll, nil
}

// GetPoll returns a poll with its options, serving from the detail cache
// when possible.
func (s *PollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrPollNotFound
	}

	key := s.cache.Keys().KeyPollDetail(id)

	var cached domain.Poll
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	poll, err := s.pollRepo.GetPoll(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, poll, s.cache.TTL().PollDetail)

	return poll, nil
}

// ListPolls returns all polls, newest first, through the list cache.
func (s *PollService) ListPolls(ctx context.Context) ([]domain.Poll, error) {
	key := s.cache.Keys().KeyPollList()

	var cached []domain.Poll
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	polls, err := s.pollRepo.ListPolls(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, polls, s.cache.TTL().PollList)

	return polls, nil
}

func (s *PollService) validateCreate(ctx context.Context, req *domain.CreatePollRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return errors.NewValidationError("title is required", nil)
	}
	if len(req.Title) > 255 {
		return errors.NewValidationError("title must be at most 255 characters", nil)
	}
	if len(req.Options) < 2 {
		return errors.NewValidationError("a poll needs at least two options", nil)
	}

	seen := make(map[string]bool, len(req.Options))
	for _, text := range req.Options {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return errors.NewValidationError("option text cannot be empty", nil)
		}
		if seen[trimmed] {
			return errors.NewValidationError("option text must be unique within a poll", nil)
		}
		seen[trimmed] = true
	}

	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		return errors.NewValidationError("expires_at must be in the future", nil)
	}

	if req.CategoryID != nil {
		exists, err := s.taxRepo.CategoryExists(ctx, *req.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrCategoryNotFound
		}
	}
	if req.CampaignID != nil {
		exists, err := s.taxRepo.CampaignExists(ctx, *req.CampaignID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrCampaignNotFound
		}
	}

	return nil
}
