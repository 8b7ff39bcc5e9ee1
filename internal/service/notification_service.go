package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/internal/repository"
)

// Notifier receives poll activity events. Implementations must never block
// the caller; the vote path fires and forgets.
type Notifier interface {
	PollCreated(poll *domain.Poll)
	VoteCast(poll *domain.Poll, voter domain.VoterIdentity)
}

// EmailSender delivers notification emails. Delivery is an external
// collaborator; the default implementation only logs.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogEmailSender logs instead of sending. Used when no mail backend is
// configured.
type LogEmailSender struct {
	Logger *zap.Logger
}

func (s *LogEmailSender) Send(ctx context.Context, to, subject, body string) error {
	s.Logger.Info("email suppressed, no mail backend configured",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// NotificationService records in-app notifications for poll activity and
// serves the notification listing endpoints.
type NotificationService struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	email    EmailSender
	logger   *zap.Logger
}

func NewNotificationService(
	repo repository.NotificationRepository,
	userRepo repository.UserRepository,
	email EmailSender,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		repo:     repo,
		userRepo: userRepo,
		email:    email,
		logger:   logger,
	}
}

// PollCreated records a notification for the poll owner. Runs in the
// background; failures are logged and dropped.
func (s *NotificationService) PollCreated(poll *domain.Poll) {
	go s.deliver(&domain.Notification{
		ID:          uuid.NewString(),
		RecipientID: poll.CreatedBy,
		ActorUserID: &poll.CreatedBy,
		Verb:        "created a poll",
		TargetType:  "Poll",
		TargetID:    poll.ID,
		Description: poll.Description,
		Link:        fmt.Sprintf("/polls/%s", poll.ID),
	}, false)
}

// VoteCast notifies the poll owner that someone voted. Self-votes and
// anonymous voters produce no actor attribution; a self-vote is skipped
// entirely.
func (s *NotificationService) VoteCast(poll *domain.Poll, voter domain.VoterIdentity) {
	if voter.IsAuthenticated() && voter.UserID == poll.CreatedBy {
		return
	}

	n := &domain.Notification{
		ID:          uuid.NewString(),
		RecipientID: poll.CreatedBy,
		Verb:        "voted on your poll",
		TargetType:  "Poll",
		TargetID:    poll.ID,
		Description: fmt.Sprintf("New vote on poll %q", poll.Title),
		Link:        fmt.Sprintf("/polls/%s/results", poll.ID),
	}
	if voter.IsAuthenticated() {
		userID := voter.UserID
		n.ActorUserID = &userID
	}

	go s.deliver(n, false)
}

// deliver persists the notification and optionally emails the recipient.
// Detached from any request context on purpose: the originating request must
// not wait on it, and its cancellation must not lose the notification.
func (s *NotificationService) deliver(n *domain.Notification, email bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	recipient, err := s.userRepo.GetByID(ctx, n.RecipientID)
	if err != nil {
		s.logger.Warn("notification dropped, recipient lookup failed",
			zap.String("recipient_id", n.RecipientID),
			zap.Error(err))
		return
	}
	if !recipient.NotificationEnabled {
		return
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Warn("failed to record notification",
			zap.String("recipient_id", n.RecipientID),
			zap.String("verb", n.Verb),
			zap.Error(err))
		return
	}

	if email {
		if err := s.email.Send(ctx, recipient.Email, n.Verb, n.Description); err != nil {
			s.logger.Warn("failed to send notification email",
				zap.String("recipient_id", n.RecipientID),
				zap.Error(err))
		}
	}
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID)
}

// MarkRead flags one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID string) error {
	return s.repo.MarkRead(ctx, id, recipientID)
}

// NopNotifier discards all events. Useful in tests.
type NopNotifier struct{}

func (NopNotifier) PollCreated(*domain.Poll)                    {}
func (NopNotifier) VoteCast(*domain.Poll, domain.VoterIdentity) {}
