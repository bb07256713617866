package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/recognizer"
	"github.com/ikodinhi/interview-scheduler/internal/util"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Tagger implements recognizer.Recognizer on top of a Gemini content
// generator. The model is consumed as a pretrained black box: the tagger
// only prompts it and decodes the labeled entities it returns.
type Tagger struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewTagger creates a Gemini-backed entity tagger.
func NewTagger(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Tagger {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Tagger{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Recognize tags entities in the provided text. A transport or model failure
// is returned as an error; a message without temporal entities yields an
// empty slice.
func (t *Tagger) Recognize(ctx context.Context, text string) ([]recognizer.Entity, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("text must not be empty")
	}

	prompt := buildPrompt(text)

	t.logger.Debug("gemini entity tagging request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, t.maxLogLen)),
	)

	raw, err := t.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("gemini entity tagging response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, t.maxLogLen)),
	)

	return parseEntities(raw)
}

func buildPrompt(text string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Extract DATE and TIME entities as a JSON array of {label, text} objects from:\n{{TEXT}}"
	}
	return strings.ReplaceAll(template, "{{TEXT}}", text)
}

type entityPayload struct {
	Label string `mapstructure:"label"`
	Text  string `mapstructure:"text"`
}

func parseEntities(raw string) ([]recognizer.Entity, error) {
	cleaned := extractJSON(raw)

	var items []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	entities := make([]recognizer.Entity, 0, len(items))
	for _, item := range items {
		var payload entityPayload
		if err := mapstructure.Decode(item, &payload); err != nil {
			return nil, fmt.Errorf("decode entity payload: %w", err)
		}

		label := strings.ToUpper(strings.TrimSpace(payload.Label))
		text := strings.TrimSpace(payload.Text)
		if label == "" || text == "" {
			continue
		}

		entities = append(entities, recognizer.Entity{Label: label, Text: text})
	}

	return entities, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
