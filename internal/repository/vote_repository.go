package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/pkg/database"
)

// Names of the partial unique indexes that enforce one vote per voter per
// poll at the storage layer. A concurrent duplicate fails the insert with a
// 23505 instead of creating a second row.
const (
	constraintUserDedup = "votes_user_dedup"
	constraintIPDedup   = "votes_ip_dedup"
)

type PostgresVoteRepository struct {
	db *database.PostgresDB
}

func NewVoteRepository(db *database.PostgresDB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// Insert appends the vote to the ledger and increments the option's counter
// in the same transaction. Either both happen or neither does, so the
// denormalized counter never disagrees with the ledger.
func (r *PostgresVoteRepository) Insert(ctx context.Context, vote *domain.Vote, singleVote bool) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO votes (id, poll_id, option_id, voter_user_id, voter_ip, single_vote)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING voted_at
	`

	err = tx.QueryRow(ctx, query,
		vote.ID,
		vote.PollID,
		vote.OptionID,
		vote.VoterUserID,
		vote.VoterIP,
		singleVote,
	).Scan(&vote.VotedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == constraintUserDedup || pgErr.ConstraintName == constraintIPDedup {
				return domain.ErrDuplicateVote
			}
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE poll_options SET vote_count = vote_count + 1
		WHERE id = $1 AND poll_id = $2
	`, vote.OptionID, vote.PollID)
	if err != nil {
		return fmt.Errorf("failed to increment vote count: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return domain.ErrOptionPollMismatch
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}

	return nil
}

// CountForPoll counts ledger rows for a poll.
func (r *PostgresVoteRepository) CountForPoll(ctx context.Context, pollID string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM votes WHERE poll_id = $1`, pollID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// RecountByOption counts ledger rows per option directly, ignoring the
// denormalized counters. Options without votes are included with zero.
func (r *PostgresVoteRepository) RecountByOption(ctx context.Context, pollID string) (map[string]int, error) {
	query := `
		SELECT o.id, COUNT(v.id)
		FROM poll_options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id
	`

	rows, err := r.db.Pool.Query(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to recount votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var optionID string
		var count int
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[optionID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vote counts: %w", err)
	}

	return counts, nil
}
