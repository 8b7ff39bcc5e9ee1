package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/internal/repository"
	"github.com/olumbah1/alx-project-nexus/pkg/redis"
)

// VotingService owns the vote ledger and the aggregation engine: casting
// votes, computing result snapshots, and keeping the result cache honest.
type VotingService struct {
	pollRepo repository.PollRepository
	voteRepo repository.VoteRepository
	cache    *CacheService
	notifier Notifier
	logger   *zap.Logger
}

func NewVotingService(
	pollRepo repository.PollRepository,
	voteRepo repository.VoteRepository,
	cache *CacheService,
	notifier Notifier,
	logger *zap.Logger,
) *VotingService {
	return &VotingService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// CastVote validates the request, appends the vote to the ledger, and
// invalidates the poll's cache entries before returning.
//
// Preconditions are checked in order: poll exists, option exists and belongs
// to the poll, poll accepts votes, voter has not voted yet. The last check is
// not done here at all; the storage layer's unique constraint is the only
// authority on duplicates, so two concurrent requests from the same voter can
// never both commit.
func (s *VotingService) CastVote(ctx context.Context, req *domain.CastVoteRequest, voter domain.VoterIdentity) (*domain.Vote, error) {
	if _, err := uuid.Parse(req.PollID); err != nil {
		return nil, domain.ErrPollNotFound
	}
	if _, err := uuid.Parse(req.OptionID); err != nil {
		return nil, domain.ErrOptionNotFound
	}
	if !voter.IsAuthenticated() && voter.IP == "" {
		return nil, fmt.Errorf("voter identity could not be resolved")
	}

	poll, err := s.pollRepo.GetPoll(ctx, req.PollID)
	if err != nil {
		return nil, err
	}

	option := findOption(poll, req.OptionID)
	if option == nil {
		// The option may exist under another poll; both cases reject the
		// vote, but a cross-poll option is a mismatch, not a missing row.
		if _, lookupErr := s.pollRepo.GetOptionPollID(ctx, req.OptionID); lookupErr == nil {
			return nil, domain.ErrOptionPollMismatch
		}
		return nil, domain.ErrOptionNotFound
	}

	if !poll.AcceptsVotes(time.Now()) {
		return nil, domain.ErrPollInactive
	}

	// The storage constraint does not dedup on polls that allow multiple
	// votes; a client-supplied idempotency key closes the retry window there.
	if req.IdempotencyKey != "" && !s.cache.TryIdempotencyLock(ctx, req.IdempotencyKey, redis.TTLIdempotency) {
		return nil, domain.ErrDuplicateVote
	}

	vote := &domain.Vote{
		ID:       uuid.NewString(),
		PollID:   poll.ID,
		OptionID: option.ID,
	}
	if voter.IsAuthenticated() {
		vote.VoterUserID = &voter.UserID
	} else {
		vote.VoterIP = &voter.IP
	}

	singleVote := !poll.AllowMultipleVotes
	if err := s.voteRepo.Insert(ctx, vote, singleVote); err != nil {
		if errors.Is(err, domain.ErrDuplicateVote) {
			s.logger.Debug("duplicate vote rejected",
				zap.String("poll_id", poll.ID),
				zap.Bool("authenticated", voter.IsAuthenticated()))
			return nil, domain.ErrDuplicateVote
		}
		return nil, err
	}

	// Must complete before CastVote returns: the caller's own results read
	// must not see a snapshot older than this vote.
	s.cache.InvalidatePoll(ctx, poll.ID)

	s.notifier.VoteCast(poll, voter)

	s.logger.Info("vote cast",
		zap.String("vote_id", vote.ID),
		zap.String("poll_id", poll.ID),
		zap.String("option_id", option.ID),
		zap.Bool("authenticated", voter.IsAuthenticated()))

	return vote, nil
}

// ComputeResults returns a result snapshot for the poll, serving from the
// results cache when possible. The denormalized option counters are the
// canonical vote source; they are updated atomically with every ledger
// insert.
func (s *VotingService) ComputeResults(ctx context.Context, pollID string) (*domain.ResultSnapshot, error) {
	if _, err := uuid.Parse(pollID); err != nil {
		return nil, domain.ErrPollNotFound
	}

	key := s.cache.Keys().KeyPollResults(pollID)

	var cached domain.ResultSnapshot
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	snapshot := buildSnapshot(poll, func(opt domain.PollOption) int { return opt.VoteCount })

	s.cache.SetJSON(ctx, key, snapshot, s.cache.TTL().PollResults)

	return snapshot, nil
}

// RecountResults computes a snapshot by counting ledger rows directly,
// bypassing both the cache and the denormalized counters. Intended for audit
// and verification tooling; under the atomic counter update the two paths
// must agree.
func (s *VotingService) RecountResults(ctx context.Context, pollID string) (*domain.ResultSnapshot, error) {
	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	counts, err := s.voteRepo.RecountByOption(ctx, pollID)
	if err != nil {
		return nil, err
	}

	return buildSnapshot(poll, func(opt domain.PollOption) int { return counts[opt.ID] }), nil
}

// buildSnapshot assembles a ResultSnapshot from a poll and a per-option vote
// source. Options keep their display order; percentages are rounded to two
// decimals and zero when the poll has no votes.
func buildSnapshot(poll *domain.Poll, votesFor func(domain.PollOption) int) *domain.ResultSnapshot {
	total := 0
	for _, opt := range poll.Options {
		total += votesFor(opt)
	}

	results := make([]domain.OptionResult, 0, len(poll.Options))
	for _, opt := range poll.Options {
		votes := votesFor(opt)
		results = append(results, domain.OptionResult{
			ID:         opt.ID,
			Text:       opt.Text,
			Votes:      votes,
			Percentage: domain.Percentage(votes, total),
		})
	}

	return &domain.ResultSnapshot{
		PollID:     poll.ID,
		Title:      poll.Title,
		TotalVotes: total,
		Options:    results,
	}
}

func findOption(poll *domain.Poll, optionID string) *domain.PollOption {
	for i := range poll.Options {
		if poll.Options[i].ID == optionID {
			return &poll.Options[i]
		}
	}
	return nil
}
