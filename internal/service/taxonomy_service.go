package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/internal/repository"
	"github.com/olumbah1/alx-project-nexus/pkg/errors"
)

// TaxonomyService handles categories and campaigns, each behind its own
// cache key class.
type TaxonomyService struct {
	repo   repository.TaxonomyRepository
	cache  *CacheService
	logger *zap.Logger
}

func NewTaxonomyService(repo repository.TaxonomyRepository, cache *CacheService, logger *zap.Logger) *TaxonomyService {
	return &TaxonomyService{repo: repo, cache: cache, logger: logger}
}

// CreateCategory persists a category and drops the category list cache.
func (s *TaxonomyService) CreateCategory(ctx context.Context, req *domain.CreateCategoryRequest, creatorID string) (*domain.Category, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.NewValidationError("title is required", nil)
	}

	category := &domain.Category{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   creatorID,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.cache.InvalidateCategoryList(ctx)

	return category, nil
}

// ListCategories returns all categories through the category cache.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	key := s.cache.Keys().KeyCategoryList()

	var cached []domain.Category
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, categories, s.cache.TTL().Category)

	return categories, nil
}

// CreateCampaign persists a campaign and drops the campaign list cache.
func (s *TaxonomyService) CreateCampaign(ctx context.Context, req *domain.CreateCampaignRequest, creatorID string) (*domain.Campaign, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.NewValidationError("title is required", nil)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, errors.NewValidationError("end_date must not be before start_date", nil)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	campaign := &domain.Campaign{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   creatorID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    isActive,
	}

	if err := s.repo.CreateCampaign(ctx, campaign); err != nil {
		return nil, err
	}

	s.cache.InvalidateCampaignList(ctx)

	return campaign, nil
}

// ListCampaigns returns all campaigns through the campaign cache.
func (s *TaxonomyService) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	key := s.cache.Keys().KeyCampaignList()

	var cached []domain.Campaign
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	campaigns, err := s.repo.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, campaigns, s.cache.TTL().Campaign)

	return campaigns, nil
}
