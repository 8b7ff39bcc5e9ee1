package repository

import (
	"context"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
)

// PollRepository defines the interface for poll store operations
type PollRepository interface {
	// CreatePoll inserts a poll together with its options in one transaction
	CreatePoll(ctx context.Context, poll *domain.Poll) error

	// GetPoll retrieves a poll with its options, ordered by display order
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)

	// ListPolls retrieves all polls with their options, newest first
	ListPolls(ctx context.Context) ([]domain.Poll, error)

	// GetOptionPollID returns the id of the poll an option belongs to, or
	// domain.ErrOptionNotFound
	GetOptionPollID(ctx context.Context, optionID string) (string, error)
}

// VoteRepository defines the interface for the vote ledger
type VoteRepository interface {
	// Insert appends a vote and increments the option counter in one atomic
	// unit of work. singleVote stamps the poll's dedup mode onto the row so
	// the storage constraint can enforce one vote per voter per poll.
	Insert(ctx context.Context, vote *domain.Vote, singleVote bool) error

	// CountForPoll counts ledger rows for a poll
	CountForPoll(ctx context.Context, pollID string) (int, error)

	// RecountByOption counts ledger rows per option, bypassing the
	// denormalized counters. Used by the audit path.
	RecountByOption(ctx context.Context, pollID string) (map[string]int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// NotificationRepository defines the interface for notification storage
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

// TaxonomyRepository defines the interface for category and campaign storage
type TaxonomyRepository interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CategoryExists(ctx context.Context, id string) (bool, error)

	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	CampaignExists(ctx context.Context, id string) (bool, error)
}
