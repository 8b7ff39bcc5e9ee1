package domain

import (
	"math"
	"time"
)

// Poll is a question users can vote on. Votes are accepted only while the
// poll is active and not past its optional expiry.
type Poll struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	CreatedBy          string       `json:"created_by"`
	CategoryID         *string      `json:"category,omitempty"`
	CampaignID         *string      `json:"campaign,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	ExpiresAt          *time.Time   `json:"expires_at,omitempty"`
	IsActive           bool         `json:"is_active"`
	AllowMultipleVotes bool         `json:"allow_multiple_votes"`
	Options            []PollOption `json:"options,omitempty"`
}

// IsExpired reports whether the poll's expiry has passed. A poll with no
// expiry never expires.
func (p *Poll) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// AcceptsVotes reports whether the poll can take new votes.
func (p *Poll) AcceptsVotes(now time.Time) bool {
	return p.IsActive && !p.IsExpired(now)
}

// TotalVotes sums the option counters.
func (p *Poll) TotalVotes() int {
	total := 0
	for _, opt := range p.Options {
		total += opt.VoteCount
	}
	return total
}

// PollOption is a single choice within a poll. (poll, text) pairs are unique
// and VoteCount is the denormalized counter maintained by the vote ledger.
type PollOption struct {
	ID           string `json:"id"`
	PollID       string `json:"poll_id"`
	Text         string `json:"text"`
	DisplayOrder int    `json:"order"`
	VoteCount    int    `json:"vote_count"`
}

// CreatePollRequest is the body for POST /poll/polls/.
type CreatePollRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	CategoryID         *string    `json:"category,omitempty"`
	CampaignID         *string    `json:"campaign,omitempty"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	IsActive           *bool      `json:"is_active,omitempty"`
	AllowMultipleVotes bool       `json:"allow_multiple_votes"`
	Options            []string   `json:"options"`
}

// ResultSnapshot is a point-in-time aggregate of a poll's vote counts. It is
// a pure function of ledger state when computed.
type ResultSnapshot struct {
	PollID     string         `json:"poll_id"`
	Title      string         `json:"title"`
	TotalVotes int            `json:"total_votes"`
	Options    []OptionResult `json:"options"`
}

// OptionResult is one option's share of a snapshot.
type OptionResult struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// Percentage computes votes/total as a percentage rounded to two decimals.
// Zero when the poll has no votes.
func Percentage(votes, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(votes)/float64(total)*100*100) / 100
}
