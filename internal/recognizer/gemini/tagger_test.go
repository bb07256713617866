package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/recognizer"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestTaggerRecognize(t *testing.T) {
	stub := &stubGenerator{response: `[{"label": "DATE", "text": "next Monday"}, {"label": "TIME", "text": "2:00 PM"}]`}
	tagger := NewTagger(stub, zap.NewNop(), 0)

	entities, err := tagger.Recognize(context.Background(), "I'm available next Monday from 2:00 PM to 3:00 PM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(entities))
	}

	if !entities[0].IsDate() || entities[0].Text != "next Monday" {
		t.Fatalf("unexpected first entity: %+v", entities[0])
	}

	if entities[1].Label != "TIME" {
		t.Fatalf("unexpected second entity: %+v", entities[1])
	}

	if stub.lastPrompt == "" {
		t.Fatalf("expected prompt to be sent")
	}

	if !strings.Contains(stub.lastPrompt, "I'm available next Monday") {
		t.Fatalf("expected candidate text in prompt, got: %s", stub.lastPrompt)
	}
}

func TestTaggerRecognizeEmptyEntities(t *testing.T) {
	stub := &stubGenerator{response: `[]`}
	tagger := NewTagger(stub, zap.NewNop(), 0)

	entities, err := tagger.Recognize(context.Background(), "Let's talk sometime")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entities) != 0 {
		t.Fatalf("expected no entities, got %d", len(entities))
	}
}

func TestTaggerRecognizePropagatesGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	tagger := NewTagger(stub, zap.NewNop(), 0)

	if _, err := tagger.Recognize(context.Background(), "tomorrow at 9 AM"); err == nil {
		t.Fatalf("expected error from generator")
	}
}

func TestTaggerRecognizeRejectsEmptyText(t *testing.T) {
	tagger := NewTagger(&stubGenerator{}, zap.NewNop(), 0)

	if _, err := tagger.Recognize(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty text")
	}
}

func TestParseEntitiesHandlesCodeBlock(t *testing.T) {
	raw := "```json\n[{\"label\": \"date\", \"text\": \"March 5th\"}]\n```"
	entities, err := parseEntities(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(entities))
	}

	if entities[0].Label != recognizer.LabelDate {
		t.Fatalf("expected label upcased to DATE, got %s", entities[0].Label)
	}
}

func TestParseEntitiesSkipsBlankEntries(t *testing.T) {
	raw := `[{"label": "", "text": "x"}, {"label": "DATE", "text": " "}, {"label": "DATE", "text": "Friday"}]`
	entities, err := parseEntities(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entities) != 1 || entities[0].Text != "Friday" {
		t.Fatalf("unexpected entities: %+v", entities)
	}
}

func TestParseEntitiesRejectsMalformedJSON(t *testing.T) {
	if _, err := parseEntities("not json at all"); err == nil {
		t.Fatalf("expected parse error")
	}
}
