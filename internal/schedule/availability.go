// Package schedule turns extracted temporal tokens into a canonical
// availability record and decides the scheduling outcome for a submission.
package schedule

import (
	"time"

	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/extract"
	"github.com/ikodinhi/interview-scheduler/internal/timeparse"
)

// DefaultMinTimeMentions is the minimum number of clock time mentions a
// response must carry before its date is treated as a real availability
// slot. Requiring two guards against a single stray time-like substring,
// such as a phone number fragment, at the cost of rejecting genuine
// single-time responses.
const DefaultMinTimeMentions = 2

// DateLayout is the textual date form used in all outbound messages.
const DateLayout = "02-01-2006"

// Availability is a resolved interview slot. Both fields are always valid:
// extraction failure is represented by the absence of the record, never by
// partially filled fields.
type Availability struct {
	Date  time.Time
	Start timeparse.Clock
}

// DateString renders the date as dd-mm-yyyy.
func (a Availability) DateString() string {
	return a.Date.Format(DateLayout)
}

// Resolver combines a normalized date with the first plausible start time.
type Resolver struct {
	parser          *timeparse.Parser
	minTimeMentions int
	logger          *zap.Logger
}

// NewResolver creates a resolver. A non-positive minTimeMentions falls back
// to DefaultMinTimeMentions.
func NewResolver(parser *timeparse.Parser, minTimeMentions int, logger *zap.Logger) *Resolver {
	if minTimeMentions <= 0 {
		minTimeMentions = DefaultMinTimeMentions
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		parser:          parser,
		minTimeMentions: minTimeMentions,
		logger:          logger,
	}
}

// Resolve produces an availability record iff the date phrase normalizes and
// the response carried at least minTimeMentions clock time mentions. The
// first parseable time becomes the start time; any further times only count
// toward the mention threshold and are otherwise unused, reserved for a
// future end-time feature.
func (r *Resolver) Resolve(tokens extract.Tokens, anchor time.Time) *Availability {
	if !tokens.HasDate() {
		return nil
	}

	if len(tokens.Times) < r.minTimeMentions {
		r.logger.Debug("rejecting availability below time mention threshold",
			zap.Int("time_phrases", len(tokens.Times)),
			zap.Int("threshold", r.minTimeMentions),
		)
		return nil
	}

	date, ok := r.parser.ResolveDate(tokens.Date, anchor)
	if !ok {
		r.logger.Debug("date phrase did not normalize", zap.String("date_phrase", tokens.Date))
		return nil
	}

	for _, phrase := range tokens.Times {
		if start, ok := timeparse.ResolveClock(phrase); ok {
			return &Availability{Date: date, Start: start}
		}
	}

	return nil
}
