package repository

import (
	"context"
	"fmt"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/pkg/database"
)

type PostgresTaxonomyRepository struct {
	db *database.PostgresDB
}

func NewTaxonomyRepository(db *database.PostgresDB) *PostgresTaxonomyRepository {
	return &PostgresTaxonomyRepository{db: db}
}

// CreateCategory inserts a category
func (r *PostgresTaxonomyRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (id, title, description, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.Pool.QueryRow(ctx, query, c.ID, c.Title, c.Description, c.CreatedBy).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ListCategories retrieves all categories
func (r *PostgresTaxonomyRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, description, created_by, created_at
		FROM categories
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// CategoryExists reports whether a category id is present
func (r *PostgresTaxonomyRepository) CategoryExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return exists, nil
}

// CreateCampaign inserts a campaign
func (r *PostgresTaxonomyRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	query := `
		INSERT INTO campaigns (id, title, description, created_by, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.Pool.QueryRow(ctx, query,
		c.ID, c.Title, c.Description, c.CreatedBy, c.StartDate, c.EndDate, c.IsActive,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

// ListCampaigns retrieves all campaigns
func (r *PostgresTaxonomyRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, description, created_by, start_date, end_date, is_active, created_at
		FROM campaigns
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedBy, &c.StartDate, &c.EndDate, &c.IsActive, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaigns: %w", err)
	}

	return campaigns, nil
}

// CampaignExists reports whether a campaign id is present
func (r *PostgresTaxonomyRepository) CampaignExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM campaigns WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check campaign: %w", err)
	}
	return exists, nil
}
