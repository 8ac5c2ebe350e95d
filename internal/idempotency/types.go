// Package idempotency remembers which order an Idempotency-Key produced, so a
// retried checkout returns the original order instead of an empty-cart refusal.
package idempotency

import (
	"context"
	"time"
)

// Status values for idempotency entries
const (
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
	StatusFailed     = "FAILED"
)

// Record is the shape persisted for one key.
type Record struct {
	IdempotencyKey string    `dynamodbav:"idempotency_key"` // PK
	Status         string    `dynamodbav:"status"`
	OrderID        string    `dynamodbav:"order_id,omitempty"`
	CreatedAt      time.Time `dynamodbav:"created_at"`
	UpdatedAt      time.Time `dynamodbav:"updated_at"`
	ExpiresAt      int64     `dynamodbav:"expires_at"` // TTL epoch seconds
	Note           string    `dynamodbav:"note,omitempty"`
}

// Store reserves keys and records their outcome.
//
// Reserve returns (nil, true, nil) when the caller now owns the key. When the
// key is already held it returns the existing record and false. A FAILED or
// expired record can be reserved again.
type Store interface {
	Reserve(ctx context.Context, key string) (*Record, bool, error)
	Complete(ctx context.Context, key, orderID string) error
	Fail(ctx context.Context, key, note string) error
}

// ScopedKey namespaces a client-supplied key to a session.
func ScopedKey(sessionID, key string) string {
	return sessionID + ":" + key
}
