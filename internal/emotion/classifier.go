// Package emotion implements the note-to-emotion pipeline: classification of
// free text, the append-only per-user emotion history, and the weekly window
// aggregation read from it.
package emotion

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/your-org/emoup/internal/models"
)

// Scores maps emotion labels to classifier magnitudes. The values are opaque
// comparable magnitudes; they need not be normalized or sum to 1.
type Scores map[models.EmotionLabel]float64

// Classifier extracts per-emotion scores from free text. Implementations may
// call out to external services; failures must surface as errors, not as
// empty score maps.
type Classifier interface {
	Classify(text string) (Scores, error)
}

// LexiconClassifier scores text by counting matches against per-emotion word
// associations, the same way the lexicon-based classifier the service
// originally shipped with did. Scores are affect frequencies: matches for a
// label divided by total affect matches.
type LexiconClassifier struct {
	lexicon map[string][]models.EmotionLabel
}

// NewLexiconClassifier builds a classifier over the built-in lexicon.
func NewLexiconClassifier() *LexiconClassifier {
	lex := make(map[string][]models.EmotionLabel)
	for label, words := range lexiconWords {
		for _, w := range words {
			lex[w] = append(lex[w], label)
		}
	}
	return &LexiconClassifier{lexicon: lex}
}

func (c *LexiconClassifier) Classify(text string) (Scores, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no tokens in text", models.ErrClassificationFailed)
	}

	counts := make(map[models.EmotionLabel]int)
	total := 0
	for _, tok := range tokens {
		for _, label := range c.lexicon[tok] {
			counts[label]++
			total++
		}
	}

	// A note with no affect words reads as neutral rather than failing,
	// so mundane notes still feed the emotion history.
	if total == 0 {
		return Scores{models.EmotionNeutral: 1}, nil
	}

	scores := make(Scores, len(counts))
	for label, n := range counts {
		scores[label] = float64(n) / float64(total)
	}
	return scores, nil
}

// tokenize lower-cases the text and splits it on anything that is not a
// letter or apostrophe.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}
