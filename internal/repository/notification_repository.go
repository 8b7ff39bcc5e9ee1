package repository

import (
	"context"
	"fmt"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/pkg/database"
)

type PostgresNotificationRepository struct {
	db *database.PostgresDB
}

func NewNotificationRepository(db *database.PostgresDB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// Create inserts a notification row
func (r *PostgresNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, actor_user_id, verb, target_type, target_id, description, link, emailed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		n.ID,
		n.RecipientID,
		n.ActorUserID,
		n.Verb,
		n.TargetType,
		n.TargetID,
		n.Description,
		n.Link,
		n.Emailed,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByRecipient retrieves a user's notifications, newest first
func (r *PostgresNotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	query := `
		SELECT id, recipient_id, actor_user_id, verb, target_type, target_id, description, link, read, emailed, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.ActorUserID,
			&n.Verb,
			&n.TargetType,
			&n.TargetID,
			&n.Description,
			&n.Link,
			&n.Read,
			&n.Emailed,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead flags a notification as read. The recipient filter keeps users
// from touching each other's notifications.
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE id = $1 AND recipient_id = $2
	`, id, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
