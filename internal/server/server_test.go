package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/pipeline"
	"github.com/ikodinhi/interview-scheduler/internal/schedule"
)

type stubProcessor struct {
	result  *pipeline.Result
	err     error
	lastSub pipeline.Submission
}

func (s *stubProcessor) Process(_ context.Context, sub pipeline.Submission) (*pipeline.Result, error) {
	s.lastSub = sub
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func postSubmit(t *testing.T, s *Server, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set(echoContentType, echoFormEncoded)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

const (
	echoContentType = "Content-Type"
	echoFormEncoded = "application/x-www-form-urlencoded"
)

func TestSubmitScheduled(t *testing.T) {
	processor := &stubProcessor{result: &pipeline.Result{
		Outcome: schedule.Outcome{Kind: schedule.KindScheduled},
		Message: pipeline.MessageScheduled,
	}}
	s := New(processor, time.UTC, zap.NewNop())

	rec := postSubmit(t, s, url.Values{
		"candidate_email":    {"candidate@example.com"},
		"candidate_response": {"next Monday from 2:00 PM to 3:00 PM"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pipeline.MessageScheduled, rec.Body.String())

	assert.Equal(t, "candidate@example.com", processor.lastSub.CandidateEmail)
	assert.NotEmpty(t, processor.lastSub.ID)
	assert.False(t, processor.lastSub.Now.IsZero())
}

func TestSubmitNoAvailability(t *testing.T) {
	processor := &stubProcessor{result: &pipeline.Result{
		Outcome: schedule.Outcome{Kind: schedule.KindNoAvailability},
		Message: pipeline.MessageNoAvailability,
	}}
	s := New(processor, time.UTC, zap.NewNop())

	rec := postSubmit(t, s, url.Values{
		"candidate_email":    {"candidate@example.com"},
		"candidate_response": {"Let's talk sometime"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pipeline.MessageNoAvailability, rec.Body.String())
}

func TestSubmitValidation(t *testing.T) {
	s := New(&stubProcessor{}, time.UTC, zap.NewNop())

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing email", url.Values{"candidate_response": {"hi"}}},
		{"missing response", url.Values{"candidate_email": {"a@b.c"}}},
		{"blank response", url.Values{"candidate_email": {"a@b.c"}, "candidate_response": {"   "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postSubmit(t, s, tt.form)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSubmitCapabilityFailureNeverLeaksInternals(t *testing.T) {
	processor := &stubProcessor{err: errors.New("gemini: quota exceeded")}
	s := New(processor, time.UTC, zap.NewNop())

	rec := postSubmit(t, s, url.Values{
		"candidate_email":    {"candidate@example.com"},
		"candidate_response": {"tomorrow at 9 AM or 10 AM"},
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "gemini")
	assert.Equal(t, unavailableMessage, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	s := New(&stubProcessor{}, time.UTC, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
