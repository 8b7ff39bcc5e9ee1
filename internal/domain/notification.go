package domain

import "time"

// Notification is one in-app notification delivered to a single user.
type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient"`
	ActorUserID *string   `json:"actor_user,omitempty"`
	Verb        string    `json:"verb"`
	TargetType  string    `json:"target_type,omitempty"`
	TargetID    string    `json:"target_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
	Read        bool      `json:"read"`
	Emailed     bool      `json:"emailed"`
	CreatedAt   time.Time `json:"created_at"`
}
