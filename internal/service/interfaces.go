package service

import (
	"context"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
)

// AuthService issues and validates the platform's JWTs
type AuthService interface {
	// Signup registers a user and issues an initial token pair
	Signup(ctx context.Context, req *domain.SignupRequest) (*domain.User, *domain.TokenPair, error)

	// Login verifies credentials and issues a token pair
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenPair, error)

	// Refresh exchanges a refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)

	// ForgotPassword issues a one-time reset token for the account, if any.
	// Never reveals whether the email exists.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and sets a new password
	ResetPassword(ctx context.Context, token, newPassword string) error

	// ValidateAccessToken checks an access token and returns the user id
	ValidateAccessToken(ctx context.Context, token string) (string, error)

	// GetProfile loads the account behind a user id
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
}

// VotingAPI is the vote-casting and aggregation surface consumed by handlers
type VotingAPI interface {
	CastVote(ctx context.Context, req *domain.CastVoteRequest, voter domain.VoterIdentity) (*domain.Vote, error)
	ComputeResults(ctx context.Context, pollID string) (*domain.ResultSnapshot, error)
	RecountResults(ctx context.Context, pollID string) (*domain.ResultSnapshot, error)
}

// PollAPI is the poll store surface consumed by handlers
type PollAPI interface {
	CreatePoll(ctx context.Context, req *domain.CreatePollRequest, creatorID string) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ListPolls(ctx context.Context) ([]domain.Poll, error)
}

// TaxonomyAPI is the category/campaign surface consumed by handlers
type TaxonomyAPI interface {
	CreateCategory(ctx context.Context, req *domain.CreateCategoryRequest, creatorID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCampaign(ctx context.Context, req *domain.CreateCampaignRequest, creatorID string) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
}

// NotificationAPI is the notification surface consumed by handlers
type NotificationAPI interface {
	List(ctx context.Context, recipientID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}
