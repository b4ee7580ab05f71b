package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/your-org/emoup/internal/config"
	"github.com/your-org/emoup/internal/models"
)

func testClient(baseURL string) *Client {
	return NewClient(config.QuotesConfig{BaseURL: baseURL, RequestsPerSec: 1000})
}

func TestRandom(t *testing.T) {
	t.Run("maps emotions to tags", func(t *testing.T) {
		var gotTag string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotTag = r.URL.Query().Get("tags")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"content":"Keep going.","author":"Anon"}`))
		}))
		defer srv.Close()

		c := testClient(srv.URL)

		tests := []struct {
			emotion models.EmotionLabel
			wantTag string
		}{
			{models.EmotionSad, "hope"},
			{models.EmotionAngry, "calm"},
			{models.EmotionFear, "courage"},
			{models.EmotionNeutral, "inspirational"},
			{"unknown", "inspirational"},
		}

		for _, tt := range tests {
			q, err := c.Random(context.Background(), tt.emotion)
			if err != nil {
				t.Fatalf("Random(%s): %v", tt.emotion, err)
			}
			if gotTag != tt.wantTag {
				t.Errorf("Random(%s) requested tag %q, want %q", tt.emotion, gotTag, tt.wantTag)
			}
			if q.Content != "Keep going." || q.Author != "Anon" {
				t.Errorf("quote = %+v", q)
			}
		}
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := testClient(srv.URL)
		if _, err := c.Random(context.Background(), models.EmotionSad); err == nil {
			t.Fatal("want error on HTTP 429")
		}
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		c := testClient(srv.URL)
		if _, err := c.Random(context.Background(), models.EmotionSad); err == nil {
			t.Fatal("want error on malformed body")
		}
	})
}
