package handler

import (
	"encoding/json"
	"net/http"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	"github.com/olumbah1/alx-project-nexus/internal/middleware"
	"github.com/olumbah1/alx-project-nexus/internal/service"
	apperrors "github.com/olumbah1/alx-project-nexus/pkg/errors"
)

// AuthHandler serves signup, login, token refresh, and password reset
type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /auth/signup/
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("invalid request body", nil))
		return
	}

	user, tokens, err := h.auth.Signup(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

// Login handles POST /auth/login/
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("invalid request body", nil))
		return
	}

	tokens, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tokens)
}

// Refresh handles POST /auth/refresh/
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		respondError(w, apperrors.NewValidationError("refresh token is required", nil))
		return
	}

	tokens, err := h.auth.Refresh(r.Context(), req.Refresh)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tokens)
}

// ForgotPassword handles POST /auth/forgot-password/. Responds identically
// whether or not the account exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondError(w, apperrors.NewValidationError("email is required", nil))
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"detail": "If an account with that email exists, a password reset link has been sent.",
	})
}

// ResetPassword handles POST /auth/reset-password/
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respondError(w, apperrors.NewValidationError("token and new_password are required", nil))
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"detail": "Password has been reset."})
}

// GetProfile handles GET /auth/me/
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		respondError(w, apperrors.NewAuthenticationError("authentication required"))
		return
	}

	user, err := h.auth.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
