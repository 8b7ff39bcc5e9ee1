package domain

import "time"

// User is an account able to create polls and receive notifications.
type User struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"-"`
	NotificationEnabled bool      `json:"notification_enabled"`
	CreatedAt           time.Time `json:"created_at"`
}

// SignupRequest is the body for POST /auth/signup/.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /auth/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body for POST /auth/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// ForgotPasswordRequest is the body for POST /auth/forgot-password/.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body for POST /auth/reset-password/.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// TokenPair carries the access and refresh JWTs issued on login or signup.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
