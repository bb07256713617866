// Package extract pulls temporal tokens out of raw candidate text. Date
// phrases come from the entity recognition capability; clock times are a
// closed lexical form and are matched directly, since general entity taggers
// do not label them reliably.
package extract

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/recognizer"
)

// timePattern matches clock times with a mandatory meridiem marker:
// 1-2 digit hour, optional :minute, AM/PM in any case, word-boundary
// delimited.
var timePattern = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:AM|PM)\b`)

// Tokens holds the temporal tokens found in one response: at most one date
// phrase (the first DATE entity in document order) and every clock time
// mention.
type Tokens struct {
	Date  string
	Times []string
}

// HasDate reports whether a date phrase was found.
func (t Tokens) HasDate() bool {
	return t.Date != ""
}

// Extractor derives temporal tokens from raw text.
type Extractor struct {
	rec    recognizer.Recognizer
	logger *zap.Logger
}

// New creates an extractor backed by the given recognizer.
func New(rec recognizer.Recognizer, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{rec: rec, logger: logger}
}

// Extract runs entity recognition and time pattern matching over the text.
// A recognizer failure is returned as an error: it means the capability
// could not run, not that the text was unparseable. Text with no DATE
// entity yields tokens with an empty date.
func (e *Extractor) Extract(ctx context.Context, text string) (Tokens, error) {
	entities, err := e.rec.Recognize(ctx, text)
	if err != nil {
		return Tokens{}, err
	}

	tokens := Tokens{Times: timePattern.FindAllString(text, -1)}

	// Only the first date mention is used; later ones are ignored.
	for _, entity := range entities {
		if entity.IsDate() {
			tokens.Date = entity.Text
			break
		}
	}

	e.logger.Debug("extracted temporal tokens",
		zap.String("date_phrase", tokens.Date),
		zap.Int("time_phrases", len(tokens.Times)),
	)

	return tokens, nil
}
