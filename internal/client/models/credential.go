// Package models holds the data types exchanged with the CMS and persisted
// by the client.
package models

import (
	"time"

	"github.com/dmitrijs2005/clinicsite/internal/timex"
)

// Credentials is the login identity sent to POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success body of POST /auth/login.
// Expires is the validity window in milliseconds from issuance.
type LoginResponse struct {
	Data struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		Expires      int64  `json:"expires"`
	} `json:"data"`
}

// ErrorResponse is the optional body of a non-2xx CMS response.
type ErrorResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FirstMessage returns the first reported error message, or "".
func (e *ErrorResponse) FirstMessage() string {
	if e == nil || len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Message
}

// Credential is the in-memory credential record.
type Credential struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// NewCredential builds a Credential from a login response issued at now.
func NewCredential(resp *LoginResponse, now time.Time) Credential {
	return Credential{
		AccessToken:  resp.Data.AccessToken,
		RefreshToken: resp.Data.RefreshToken,
		ExpiresAt:    now.Add(time.Duration(resp.Data.Expires) * time.Millisecond),
	}
}

// Snapshot converts the credential to its persisted form.
func (c Credential) Snapshot() TokenSnapshot {
	var expiresAt int64
	if !c.ExpiresAt.IsZero() {
		expiresAt = c.ExpiresAt.UnixMilli()
	}
	return TokenSnapshot{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		ExpiresAt:    expiresAt,
	}
}

// TokenSnapshot is the shape stored under the credential key in every tier.
// ExpiresAt is epoch milliseconds.
type TokenSnapshot struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Credential converts the snapshot back into an in-memory record.
func (s TokenSnapshot) Credential() Credential {
	return Credential{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    timex.UnixMilli(s.ExpiresAt),
	}
}
