package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSaveResponse(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	response := &CandidateResponse{
		ID:             "sub-1",
		CandidateEmail: "candidate@example.com",
		Text:           "next Monday from 2:00 PM to 3:00 PM",
		ReceivedAt:     time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveResponse(context.Background(), response))

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM candidate_response`).Scan(&count))
	assert.Equal(t, 1, count)

	// Duplicate IDs are rejected; a submission is archived exactly once.
	assert.Error(t, s.SaveResponse(context.Background(), response))
}

func TestSQLiteSaveResponseNil(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	assert.Error(t, s.SaveResponse(context.Background(), nil))
}
