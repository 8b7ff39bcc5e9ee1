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

// PollHandler serves poll store reads and poll creation
type PollHandler struct {
	polls service.PollAPI
}

func NewPollHandler(polls service.PollAPI) *PollHandler {
	return &PollHandler{polls: polls}
}

// CreatePoll handles POST /poll/polls/
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		respondError(w, apperrors.NewAuthenticationError("authentication required"))
		return
	}

	var req domain.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("invalid request body", nil))
		return
	}

	poll, err := h.polls.CreatePoll(r.Context(), &req, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, poll)
}

// GetPoll handles GET /poll/polls/{id}/
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.polls.GetPoll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, poll)
}

// ListPolls handles GET /poll/polls/
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.ListPolls(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if polls == nil {
		polls = []domain.Poll{}
	}
	respondJSON(w, http.StatusOK, polls)
}
