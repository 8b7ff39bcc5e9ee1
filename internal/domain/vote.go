package domain

import "time"

// VoterIdentity is the dedup key for a vote: the authenticated user id when
// the request carries one, otherwise the request's origin IP. Exactly one of
// the two fields is set.
type VoterIdentity struct {
	UserID string
	IP     string
}

// IsAuthenticated reports whether the identity is a logged-in user.
func (v VoterIdentity) IsAuthenticated() bool {
	return v.UserID != ""
}

// Vote is one immutable row in the vote ledger.
type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll"`
	OptionID    string    `json:"option"`
	VoterUserID *string   `json:"voter_user,omitempty"`
	VoterIP     *string   `json:"voter_ip,omitempty"`
	VotedAt     time.Time `json:"voted_at"`
}

// CastVoteRequest is the body for POST /poll/votes/. IdempotencyKey comes
// from the Idempotency-Key header, not the body; clients that retry submits
// on polls allowing multiple votes use it to avoid double-counting.
type CastVoteRequest struct {
	PollID         string `json:"poll"`
	OptionID       string `json:"option"`
	IdempotencyKey string `json:"-"`
}
