package domain

import "time"

// DateLayout is the calendar date format used across the API (AAAA-MM-DD).
const DateLayout = "2006-01-02"

// MaxLoginAttempts is the number of consecutive failed logins that locks an account.
const MaxLoginAttempts = 3

// LoginOutcome is the decision taken for a single authentication attempt.
type LoginOutcome string

const (
	LoginAccepted                   LoginOutcome = "ACCEPTED"
	LoginRejectedInvalidCredentials LoginOutcome = "REJECTED_INVALID_CREDENTIALS"
	LoginRejectedLocked             LoginOutcome = "REJECTED_LOCKED"
)

// LoginResult is returned by every completed authentication attempt.
type LoginResult struct {
	Outcome LoginOutcome
	// RemainingAttempts is set only for wrong-password rejections of a known account.
	RemainingAttempts *int
	// JustLocked is true when this attempt crossed the threshold.
	JustLocked bool
	Token      string
	ExpiresAt  time.Time
	Account    *StaffAccount
}

// Accepted reports whether the attempt produced a token.
func (r *LoginResult) Accepted() bool {
	return r != nil && r.Outcome == LoginAccepted
}
