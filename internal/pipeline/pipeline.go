// Package pipeline orchestrates one submission end to end: temporal token
// extraction, date/time normalization, availability resolution, the
// scheduling decision and the notification fan-out. Each invocation is
// stateless apart from the read-only recruiter roster, so concurrent
// submissions need no locking here.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/extract"
	"github.com/ikodinhi/interview-scheduler/internal/notify"
	"github.com/ikodinhi/interview-scheduler/internal/schedule"
	"github.com/ikodinhi/interview-scheduler/internal/store"
)

// The two candidate-facing outcome sentences. Nothing else is ever shown to
// a candidate, in particular no internal error text.
const (
	MessageScheduled      = "Interview Scheduled!"
	MessageNoAvailability = "Unable to extract availability from response."
)

// Submission is one candidate reply to process. Now is the anchor instant
// for relative date resolution, injected by the entry point.
type Submission struct {
	ID             string
	CandidateEmail string
	Text           string
	Now            time.Time
}

// Result is the terminal state of a processed submission.
type Result struct {
	Outcome    schedule.Outcome
	Deliveries []notify.Delivery
	Message    string
}

// Pipeline wires the stages together. Construct it once and share it across
// submissions.
type Pipeline struct {
	extractor  *extract.Extractor
	resolver   *schedule.Resolver
	selector   schedule.Selector
	roster     schedule.Roster
	dispatcher *notify.Dispatcher
	archive    store.Store
	logger     *zap.Logger
}

// Deps aggregates the pipeline's collaborators. Archive may be nil when no
// response persistence is configured.
type Deps struct {
	Extractor  *extract.Extractor
	Resolver   *schedule.Resolver
	Selector   schedule.Selector
	Roster     schedule.Roster
	Dispatcher *notify.Dispatcher
	Archive    store.Store
	Logger     *zap.Logger
}

// New creates a pipeline and validates its fixed configuration.
func New(deps Deps) (*Pipeline, error) {
	if deps.Extractor == nil || deps.Resolver == nil || deps.Dispatcher == nil {
		return nil, fmt.Errorf("extractor, resolver and dispatcher are required")
	}
	if deps.Selector == nil {
		return nil, fmt.Errorf("recruiter selector is required")
	}
	if err := deps.Roster.Validate(); err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Pipeline{
		extractor:  deps.Extractor,
		resolver:   deps.Resolver,
		selector:   deps.Selector,
		roster:     deps.Roster,
		dispatcher: deps.Dispatcher,
		archive:    deps.Archive,
		logger:     deps.Logger,
	}, nil
}

// Process runs one submission to completion, synchronously. An error is
// returned only when the pipeline itself could not run (the recognition
// capability failed); unparseable candidate text is a regular
// no-availability result.
func (p *Pipeline) Process(ctx context.Context, sub Submission) (*Result, error) {
	if strings.TrimSpace(sub.CandidateEmail) == "" {
		return nil, fmt.Errorf("candidate email is required")
	}
	if strings.TrimSpace(sub.Text) == "" {
		return nil, fmt.Errorf("candidate response text is required")
	}

	logger := p.logger.With(
		zap.String("submission_id", sub.ID),
		zap.String("candidate", sub.CandidateEmail),
	)

	p.archiveResponse(ctx, sub, logger)

	tokens, err := p.extractor.Extract(ctx, sub.Text)
	if err != nil {
		return nil, fmt.Errorf("extract temporal tokens: %w", err)
	}

	avail := p.resolver.Resolve(tokens, sub.Now)
	outcome := schedule.Decide(sub.CandidateEmail, avail, p.selector, p.roster)

	logger.Info("scheduling decision",
		zap.String("outcome", outcome.Kind.String()),
		zap.String("recruiter", outcome.Recruiter),
	)

	deliveries := p.dispatcher.Dispatch(ctx, outcome)

	message := MessageNoAvailability
	if outcome.Kind == schedule.KindScheduled {
		message = MessageScheduled
	}

	return &Result{Outcome: outcome, Deliveries: deliveries, Message: message}, nil
}

// archiveResponse stores the raw response before extraction. Best effort: a
// broken archive must not block the scheduling decision.
func (p *Pipeline) archiveResponse(ctx context.Context, sub Submission, logger *zap.Logger) {
	if p.archive == nil {
		return
	}

	err := p.archive.SaveResponse(ctx, &store.CandidateResponse{
		ID:             sub.ID,
		CandidateEmail: sub.CandidateEmail,
		Text:           sub.Text,
		ReceivedAt:     sub.Now,
	})
	if err != nil {
		logger.Warn("archiving candidate response failed", zap.Error(err))
	}
}
