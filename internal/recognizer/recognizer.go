// Package recognizer defines the entity recognition capability consumed by
// the extraction pipeline. Implementations tag substrings of free text with
// entity labels; the pipeline itself only cares about DATE entities.
package recognizer

import "context"

// LabelDate marks an entity recognized as a calendar date phrase.
const LabelDate = "DATE"

// Entity is a labeled substring of the analyzed text. Entities are returned
// in document order.
type Entity struct {
	Label string
	Text  string
}

// IsDate reports whether the entity carries a date phrase.
func (e Entity) IsDate() bool {
	return e.Label == LabelDate
}

// Recognizer tags entities in free text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}
