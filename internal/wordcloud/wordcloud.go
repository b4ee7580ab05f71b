// Package wordcloud turns a user's notes into a rendered word-cloud image
// via an external rendering service.
package wordcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/your-org/emoup/internal/models"
)

const defaultRenderURL = "https://quickchart.io/wordcloud"

// maxWords caps how many distinct words are sent to the renderer.
const maxWords = 60

// stopwords are dropped before counting; note text is conversational and
// these would otherwise dominate every cloud.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "i": true, "in": true, "is": true, "it": true, "its": true,
	"me": true, "my": true, "of": true, "on": true, "or": true, "she": true,
	"so": true, "that": true, "the": true, "they": true, "this": true,
	"to": true, "was": true, "we": true, "were": true, "will": true,
	"with": true, "you": true,
}

// Renderer calls the word-cloud rendering service.
type Renderer struct {
	renderURL  string
	httpClient *http.Client
}

func NewRenderer(renderURL string) *Renderer {
	if renderURL == "" {
		renderURL = defaultRenderURL
	}
	return &Renderer{
		renderURL: renderURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WordCounts builds the frequency table over every note's text, lower-cased,
// stopwords removed.
func WordCounts(notes []models.Note) map[string]int {
	counts := make(map[string]int)
	for _, note := range notes {
		words := strings.FieldsFunc(strings.ToLower(note.Text), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		for _, w := range words {
			if len(w) < 2 || stopwords[w] {
				continue
			}
			counts[w]++
		}
	}
	return counts
}

type renderRequest struct {
	Format      string `json:"format"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Text        string `json:"text"`
	UseWordList bool   `json:"useWordList"`
}

// Render sends the most frequent words to the rendering service and returns
// the PNG bytes. Word frequency is expressed by repetition, which is what
// the renderer's word-list mode expects.
func (r *Renderer) Render(ctx context.Context, counts map[string]int) ([]byte, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("no words to render")
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > maxWords {
		words = words[:maxWords]
	}

	var repeated []string
	for _, w := range words {
		for n := 0; n < counts[w]; n++ {
			repeated = append(repeated, w)
		}
	}

	payload, err := json.Marshal(renderRequest{
		Format:      "png",
		Width:       800,
		Height:      600,
		Text:        strings.Join(repeated, ","),
		UseWordList: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.renderURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render word cloud: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("word cloud renderer returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read rendered image: %w", err)
	}
	return data, nil
}
