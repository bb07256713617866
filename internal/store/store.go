// Package store archives raw candidate responses. Persistence is a thin
// capability here: the pipeline writes one row per submission and never
// reads it back.
package store

import (
	"context"
	"time"
)

// CandidateResponse is a raw submission as received, immutable once stored.
type CandidateResponse struct {
	ID             string
	CandidateEmail string
	Text           string
	ReceivedAt     time.Time
}

// Store persists candidate responses.
type Store interface {
	SaveResponse(ctx context.Context, response *CandidateResponse) error
	Close() error
}
