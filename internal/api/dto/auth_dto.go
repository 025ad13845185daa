package dto

import "time"

// LoginRequest payload for member login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the success payload; the token itself travels only in
// the session cookie.
type LoginResponse struct {
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse describes the authenticated caller.
type SessionResponse struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}
