package commands

import (
	"context"
	"time"
)

// CodeSender delivers a one-time verification code to a phone number.
// Implemented by the Twilio adapter; faked in tests.
type CodeSender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// VerificationStore holds short-lived verification state: hashed codes,
// per-phone send counters, and one-shot reset-token ids. Implemented on
// Redis so state expires without a sweeper.
type VerificationStore interface {
	// IncrementSendCount bumps the per-phone counter and refreshes its
	// expiry, returning the new count within the window.
	IncrementSendCount(ctx context.Context, phone string, window time.Duration) (int, error)
	SaveCodeHash(ctx context.Context, phone, kind, hash string, ttl time.Duration) error
	// CodeHash returns "" when no code is stored or it has expired.
	CodeHash(ctx context.Context, phone, kind string) (string, error)
	DeleteCode(ctx context.Context, phone, kind string) error
	PutResetToken(ctx context.Context, jti string, ttl time.Duration) error
	// ConsumeResetToken removes the token id, reporting whether it was
	// still present. A second consume of the same id returns false.
	ConsumeResetToken(ctx context.Context, jti string) (bool, error)
}
