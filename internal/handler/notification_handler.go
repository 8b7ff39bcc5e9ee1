package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/internal/middleware"
	"github.com/olumbah1/alx-project-nexus/internal/service"
	apperrors "github.com/olumbah1/alx-project-nexus/pkg/errors"
)

// NotificationHandler serves the in-app notification endpoints
type NotificationHandler struct {
	notifications service.NotificationAPI
}

func NewNotificationHandler(notifications service.NotificationAPI) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /notifications/
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		respondError(w, apperrors.NewAuthenticationError("authentication required"))
		return
	}

	notifications, err := h.notifications.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	if notifications == nil {
		notifications = []domain.Notification{}
	}
	respondJSON(w, http.StatusOK, notifications)
}

// MarkRead handles POST /notifications/{id}/read/
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		respondError(w, apperrors.NewAuthenticationError("authentication required"))
		return
	}

	if err := h.notifications.MarkRead(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"detail": "Notification marked as read."})
}
