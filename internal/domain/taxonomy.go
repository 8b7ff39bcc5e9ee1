package domain

import "time"

// Category groups polls by topic.
type Category struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Campaign groups polls under a time-bounded initiative.
type Campaign struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedBy   string     `json:"-"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateCategoryRequest is the body for POST /poll/categories/.
type CreateCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateCampaignRequest is the body for POST /poll/campaigns/.
type CreateCampaignRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}
