package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/internal/middleware"
	"github.com/olumbah1/alx-project-nexus/internal/service"
	apperrors "github.com/olumbah1/alx-project-nexus/pkg/errors"
)

// VoteHandler serves the vote-casting and results endpoints
type VoteHandler struct {
	voting service.VotingAPI
}

func NewVoteHandler(voting service.VotingAPI) *VoteHandler {
	return &VoteHandler{voting: voting}
}

// CastVote handles POST /poll/votes/
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req domain.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("invalid request body", nil))
		return
	}
	if req.PollID == "" || req.OptionID == "" {
		respondError(w, apperrors.NewValidationError("poll and option are required", nil))
		return
	}
	req.IdempotencyKey = r.Header.Get("Idempotency-Key")

	// Authenticated user id wins; anonymous voters dedup by origin IP
	voter := domain.VoterIdentity{UserID: middleware.UserID(r)}
	if !voter.IsAuthenticated() {
		voter.IP = clientIP(r)
	}

	vote, err := h.voting.CastVote(r.Context(), &req, voter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, vote)
}

// GetResults handles GET /poll/polls/{id}/results/
func (h *VoteHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "id")

	snapshot, err := h.voting.ComputeResults(r.Context(), pollID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// RecountResults handles GET /poll/polls/{id}/results/recount/. Audit
// endpoint that recomputes the snapshot from the ledger, skipping both the
// cache and the denormalized counters.
func (h *VoteHandler) RecountResults(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "id")

	snapshot, err := h.voting.RecountResults(r.Context(), pollID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}
