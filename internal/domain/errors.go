package domain

import "errors"

// Sentinel errors shared between the repositories and services. Handlers
// translate these into the HTTP error taxonomy.
var (
	ErrPollNotFound       = errors.New("poll not found")
	ErrOptionNotFound     = errors.New("option not found")
	ErrOptionPollMismatch = errors.New("option does not belong to poll")
	ErrPollInactive       = errors.New("poll is not accepting votes")
	ErrDuplicateVote      = errors.New("you have already voted in this poll")
	ErrDuplicateOption    = errors.New("option text already exists in poll")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrCategoryNotFound     = errors.New("category not found")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
