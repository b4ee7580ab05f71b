package emotion

import (
	"errors"
	"math"
	"testing"

	"github.com/your-org/emoup/internal/models"
)

func TestLexiconClassifierClassify(t *testing.T) {
	c := NewLexiconClassifier()

	t.Run("empty text fails", func(t *testing.T) {
		_, err := c.Classify("   ...  ")
		if !errors.Is(err, models.ErrClassificationFailed) {
			t.Fatalf("err = %v, want ErrClassificationFailed", err)
		}
	})

	t.Run("no affect words reads neutral", func(t *testing.T) {
		scores, err := c.Classify("went to the office and wrote some reports")
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if len(scores) != 1 || scores[models.EmotionNeutral] != 1 {
			t.Errorf("scores = %v, want only neutral=1", scores)
		}
	})

	t.Run("single emotion dominates", func(t *testing.T) {
		scores, err := c.Classify("I felt so happy today, full of joy and laughing a lot")
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if scores[models.EmotionHappy] != 1 {
			t.Errorf("happy score = %v, want 1", scores[models.EmotionHappy])
		}
	})

	t.Run("mixed emotions split the mass", func(t *testing.T) {
		scores, err := c.Classify("happy in the morning but sad and lonely at night")
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if scores[models.EmotionHappy] == 0 || scores[models.EmotionSad] == 0 {
			t.Fatalf("scores = %v, want both happy and sad present", scores)
		}
		if scores[models.EmotionSad] <= scores[models.EmotionHappy] {
			t.Errorf("scores = %v, want sad > happy (two sad words vs one happy)", scores)
		}

		var sum float64
		for _, s := range scores {
			sum += s
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("score sum = %v, want 1", sum)
		}
	})

	t.Run("case and punctuation are irrelevant", func(t *testing.T) {
		a, err := c.Classify("ANGRY!!! Furious, raging.")
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		b, err := c.Classify("angry furious raging")
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if a[models.EmotionAngry] != b[models.EmotionAngry] {
			t.Errorf("scores differ across formatting: %v vs %v", a, b)
		}
	})
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"don't worry", []string{"don't", "worry"}},
		{"one2two three", []string{"one", "two", "three"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := tokenize(tt.text)
		if len(got) != len(tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
			}
		}
	}
}
