package handler

import (
	"encoding/json"
	"net/http"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/internal/middleware"
	"github.com/olumbah1/alx-project-nexus/internal/service"
	apperrors "github.com/olumbah1/alx-project-nexus/pkg/errors"
)

// TaxonomyHandler serves category and campaign endpoints
type TaxonomyHandler struct {
	taxonomy service.TaxonomyAPI
}

func NewTaxonomyHandler(taxonomy service.TaxonomyAPI) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy}
}

// ListCategories handles GET /poll/categories/
func (h *TaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.taxonomy.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if categories == nil {
		categories = []domain.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

// CreateCategory handles POST /poll/categories/
func (h *TaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		respondError(w, apperrors.NewAuthenticationError("authentication required"))
		return
	}

	var req domain.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("invalid request body", nil))
		return
	}

	category, err := h.taxonomy.CreateCategory(r.Context(), &req, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

// ListCampaigns handles GET /poll/campaigns/
func (h *TaxonomyHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.taxonomy.ListCampaigns(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	respondJSON(w, http.StatusOK, campaigns)
}

// CreateCampaign handles POST /poll/campaigns/
func (h *TaxonomyHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		respondError(w, apperrors.NewAuthenticationError("authentication required"))
		return
	}

	var req domain.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("invalid request body", nil))
		return
	}

	campaign, err := h.taxonomy.CreateCampaign(r.Context(), &req, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, campaign)
}
