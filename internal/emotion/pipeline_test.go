package emotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/your-org/emoup/internal/models"
)

// fakeUserStore keeps users in a map and mimics the document-store update
// semantics the pipeline depends on.
type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetUser(_ context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, models.NotFound(id)
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetUserByDevice(_ context.Context, deviceID string) (*models.User, error) {
	for _, u := range s.users {
		if u.DeviceID == deviceID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.NotFound(deviceID)
}

func (s *fakeUserStore) PushNote(_ context.Context, id string, note models.Note, updated int64) error {
	u, ok := s.users[id]
	if !ok {
		return models.NotFound(id)
	}
	u.Notes = append(u.Notes, note)
	u.Updated = updated
	return nil
}

func (s *fakeUserStore) AppendEmotion(_ context.Context, id string, event models.EmotionEvent) error {
	u, ok := s.users[id]
	if !ok {
		return models.NotFound(id)
	}
	u.States = append(u.States, event)
	u.CurrentEmotion = event.Emotion
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecordEmotion(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

	t.Run("appends event and refreshes current emotion", func(t *testing.T) {
		store := newFakeUserStore(&models.User{ID: "u1"})
		p := NewPipeline(store, NewLexiconClassifier())
		p.now = fixedClock(now)

		u, err := p.RecordEmotion(context.Background(), "u1", "  HAPPY ", false)
		if err != nil {
			t.Fatalf("RecordEmotion: %v", err)
		}
		if u.CurrentEmotion != models.EmotionHappy {
			t.Errorf("current emotion = %q, want happy", u.CurrentEmotion)
		}
		if len(u.States) != 1 {
			t.Fatalf("states = %v, want one event", u.States)
		}
		if u.States[0].Captured != now.Unix() {
			t.Errorf("captured = %d, want %d", u.States[0].Captured, now.Unix())
		}
	})

	t.Run("history grows on repeated captures", func(t *testing.T) {
		store := newFakeUserStore(&models.User{ID: "u1"})
		p := NewPipeline(store, NewLexiconClassifier())
		p.now = fixedClock(now)

		for i := 0; i < 3; i++ {
			if _, err := p.RecordEmotion(context.Background(), "u1", models.EmotionSad, false); err != nil {
				t.Fatalf("RecordEmotion #%d: %v", i, err)
			}
		}
		u, _ := store.GetUser(context.Background(), "u1")
		if len(u.States) != 3 {
			t.Errorf("states length = %d, want 3", len(u.States))
		}
	})

	t.Run("resolves device ids", func(t *testing.T) {
		store := newFakeUserStore(&models.User{ID: "u1", DeviceID: "band-42"})
		p := NewPipeline(store, NewLexiconClassifier())
		p.now = fixedClock(now)

		u, err := p.RecordEmotion(context.Background(), "band-42", models.EmotionFear, true)
		if err != nil {
			t.Fatalf("RecordEmotion: %v", err)
		}
		if u.ID != "u1" {
			t.Errorf("resolved user = %q, want u1", u.ID)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		store := newFakeUserStore()
		p := NewPipeline(store, NewLexiconClassifier())

		_, err := p.RecordEmotion(context.Background(), "ghost", models.EmotionHappy, false)
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestIngestNote(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

	t.Run("stores note and derives events", func(t *testing.T) {
		store := newFakeUserStore(&models.User{ID: "u1"})
		p := NewPipeline(store, NewLexiconClassifier())
		p.now = fixedClock(now)

		u, err := p.IngestNote(context.Background(), "u1", models.Note{Text: "so happy and joyful today"})
		if err != nil {
			t.Fatalf("IngestNote: %v", err)
		}
		if len(u.Notes) != 1 {
			t.Fatalf("notes = %v, want one", u.Notes)
		}
		if u.Notes[0].Captured == "" {
			t.Error("note captured timestamp not defaulted")
		}
		if len(u.States) != 1 || u.States[0].Emotion != models.EmotionHappy {
			t.Errorf("states = %v, want one happy event", u.States)
		}
	})

	t.Run("mixed note derives multiple events in canonical order", func(t *testing.T) {
		store := newFakeUserStore(&models.User{ID: "u1"})
		p := NewPipeline(store, NewLexiconClassifier())
		p.now = fixedClock(now)

		// One affect word each: both labels score at the mean.
		u, err := p.IngestNote(context.Background(), "u1", models.Note{Text: "happy then sad"})
		if err != nil {
			t.Fatalf("IngestNote: %v", err)
		}
		if len(u.States) != 2 {
			t.Fatalf("states = %v, want two events", u.States)
		}
		if u.States[0].Emotion != models.EmotionHappy || u.States[1].Emotion != models.EmotionSad {
			t.Errorf("event order = %v, want happy then sad", u.States)
		}
	})

	t.Run("neutral note still records neutral", func(t *testing.T) {
		store := newFakeUserStore(&models.User{ID: "u1"})
		p := NewPipeline(store, NewLexiconClassifier())
		p.now = fixedClock(now)

		u, err := p.IngestNote(context.Background(), "u1", models.Note{Text: "went shopping then cooked dinner"})
		if err != nil {
			t.Fatalf("IngestNote: %v", err)
		}
		if len(u.States) != 1 || u.States[0].Emotion != models.EmotionNeutral {
			t.Errorf("states = %v, want one neutral event", u.States)
		}
	})

	t.Run("classification failure after note is stored", func(t *testing.T) {
		store := newFakeUserStore(&models.User{ID: "u1"})
		p := NewPipeline(store, NewLexiconClassifier())
		p.now = fixedClock(now)

		_, err := p.IngestNote(context.Background(), "u1", models.Note{Text: "!!!"})
		if !errors.Is(err, models.ErrClassificationFailed) {
			t.Fatalf("err = %v, want ErrClassificationFailed", err)
		}

		u, _ := store.GetUser(context.Background(), "u1")
		if len(u.Notes) != 1 {
			t.Errorf("notes = %v, want the note stored despite the failure", u.Notes)
		}
		if len(u.States) != 0 {
			t.Errorf("states = %v, want none", u.States)
		}
	})

	t.Run("unknown user stores nothing", func(t *testing.T) {
		store := newFakeUserStore()
		p := NewPipeline(store, NewLexiconClassifier())

		_, err := p.IngestNote(context.Background(), "ghost", models.Note{Text: "happy"})
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestWeeklyHistogram(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	t.Run("counts only the current week", func(t *testing.T) {
		store := newFakeUserStore(&models.User{
			ID: "u1",
			States: []models.EmotionEvent{
				{Emotion: models.EmotionAngry, Captured: monday.AddDate(0, 0, -2).Unix()},
				{Emotion: models.EmotionHappy, Captured: monday.Unix()},
				{Emotion: models.EmotionHappy, Captured: monday.AddDate(0, 0, 1).Unix()},
				{Emotion: models.EmotionSad, Captured: monday.AddDate(0, 0, 2).Unix()},
			},
		})
		p := NewPipeline(store, NewLexiconClassifier())
		p.now = fixedClock(now)

		hist, err := p.WeeklyHistogram(context.Background(), "u1")
		if err != nil {
			t.Fatalf("WeeklyHistogram: %v", err)
		}
		if hist[models.EmotionHappy] != 2 || hist[models.EmotionSad] != 1 {
			t.Errorf("histogram = %v, want happy=2 sad=1", hist)
		}
		if hist[models.EmotionAngry] != 0 {
			t.Errorf("histogram = %v, want stale angry event excluded", hist)
		}
	})

	t.Run("no events at all", func(t *testing.T) {
		store := newFakeUserStore(&models.User{ID: "u1"})
		p := NewPipeline(store, NewLexiconClassifier())
		p.now = fixedClock(now)

		_, err := p.WeeklyHistogram(context.Background(), "u1")
		if !errors.Is(err, models.ErrNoEmotionData) {
			t.Fatalf("err = %v, want ErrNoEmotionData", err)
		}
	})

	t.Run("stale events yield an empty histogram", func(t *testing.T) {
		store := newFakeUserStore(&models.User{
			ID: "u1",
			States: []models.EmotionEvent{
				{Emotion: models.EmotionHappy, Captured: monday.AddDate(0, 0, -30).Unix()},
			},
		})
		p := NewPipeline(store, NewLexiconClassifier())
		p.now = fixedClock(now)

		hist, err := p.WeeklyHistogram(context.Background(), "u1")
		if err != nil {
			t.Fatalf("WeeklyHistogram: %v", err)
		}
		if len(hist) != 0 {
			t.Errorf("histogram = %v, want empty", hist)
		}
	})
}
