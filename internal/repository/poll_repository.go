package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/pkg/database"
)

type PostgresPollRepository struct {
	db *database.PostgresDB
}

func NewPollRepository(db *database.PostgresDB) *PostgresPollRepository {
	return &PostgresPollRepository{db: db}
}

// CreatePoll inserts the poll and all of its options in one transaction so a
// poll is never visible without its options.
func (r *PostgresPollRepository) CreatePoll(ctx context.Context, poll *domain.Poll) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO polls (id, title, description, created_by, category_id, campaign_id, expires_at, is_active, allow_multiple_votes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err = tx.QueryRow(ctx, query,
		poll.ID,
		poll.Title,
		poll.Description,
		poll.CreatedBy,
		poll.CategoryID,
		poll.CampaignID,
		poll.ExpiresAt,
		poll.IsActive,
		poll.AllowMultipleVotes,
	).Scan(&poll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create poll: %w", err)
	}

	for i := range poll.Options {
		opt := &poll.Options[i]
		_, err = tx.Exec(ctx, `
			INSERT INTO poll_options (id, poll_id, text, display_order)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, poll.ID, opt.Text, opt.DisplayOrder)
		if err != nil {
			if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
				return domain.ErrDuplicateOption
			}
			return fmt.Errorf("failed to create poll option: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit poll creation: %w", err)
	}

	return nil
}

// GetPoll retrieves a poll with its options ordered by display order, then id.
func (r *PostgresPollRepository) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	var poll domain.Poll
	query := `
		SELECT id, title, description, created_by, category_id, campaign_id, created_at, expires_at, is_active, allow_multiple_votes
		FROM polls
		WHERE id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&poll.ID,
		&poll.Title,
		&poll.Description,
		&poll.CreatedBy,
		&poll.CategoryID,
		&poll.CampaignID,
		&poll.CreatedAt,
		&poll.ExpiresAt,
		&poll.IsActive,
		&poll.AllowMultipleVotes,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	options, err := r.getOptions(ctx, id)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	return &poll, nil
}

// ListPolls retrieves all polls with their options, newest first.
func (r *PostgresPollRepository) ListPolls(ctx context.Context) ([]domain.Poll, error) {
	query := `
		SELECT id, title, description, created_by, category_id, campaign_id, created_at, expires_at, is_active, allow_multiple_votes
		FROM polls
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	var polls []domain.Poll
	for rows.Next() {
		var poll domain.Poll
		err := rows.Scan(
			&poll.ID,
			&poll.Title,
			&poll.Description,
			&poll.CreatedBy,
			&poll.CategoryID,
			&poll.CampaignID,
			&poll.CreatedAt,
			&poll.ExpiresAt,
			&poll.IsActive,
			&poll.AllowMultipleVotes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate polls: %w", err)
	}

	for i := range polls {
		options, err := r.getOptions(ctx, polls[i].ID)
		if err != nil {
			return nil, err
		}
		polls[i].Options = options
	}

	return polls, nil
}

// GetOptionPollID returns the poll an option belongs to. Used to tell a
// cross-poll option apart from a missing one.
func (r *PostgresPollRepository) GetOptionPollID(ctx context.Context, optionID string) (string, error) {
	var pollID string
	err := r.db.Pool.QueryRow(ctx, `SELECT poll_id FROM poll_options WHERE id = $1`, optionID).Scan(&pollID)
	if err == pgx.ErrNoRows {
		return "", domain.ErrOptionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up option: %w", err)
	}
	return pollID, nil
}

func (r *PostgresPollRepository) getOptions(ctx context.Context, pollID string) ([]domain.PollOption, error) {
	query := `
		SELECT id, poll_id, text, display_order, vote_count
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY display_order ASC, id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	var options []domain.PollOption
	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.DisplayOrder, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan poll option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate poll options: %w", err)
	}

	return options, nil
}
