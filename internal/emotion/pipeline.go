package emotion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/emoup/internal/models"
	"github.com/your-org/emoup/internal/observability"
)

// UserStore is the narrow document-store contract the pipeline writes
// through.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByDevice(ctx context.Context, deviceID string) (*models.User, error)
	PushNote(ctx context.Context, id string, note models.Note, updated int64) error
	AppendEmotion(ctx context.Context, id string, event models.EmotionEvent) error
}

// Pipeline ties note ingestion, emotion recording and weekly aggregation
// together over a user store and a classifier.
type Pipeline struct {
	store      UserStore
	classifier Classifier
	now        func() time.Time
}

func NewPipeline(store UserStore, classifier Classifier) *Pipeline {
	return &Pipeline{
		store:      store,
		classifier: classifier,
		now:        time.Now,
	}
}

// IngestNote appends the note to the user's note sequence, classifies its
// text and records one emotion event for every label scoring at or above the
// mean of all returned scores. A single note can therefore derive zero, one
// or several events. Classifier failures propagate as
// models.ErrClassificationFailed after the note is already stored.
func (p *Pipeline) IngestNote(ctx context.Context, userID string, note models.Note) (*models.User, error) {
	if note.Captured == "" {
		note.Captured = p.now().Format(time.RFC3339)
	}

	if err := p.store.PushNote(ctx, userID, note, p.now().Unix()); err != nil {
		return nil, err
	}
	observability.NotesIngested.Inc()

	scores, err := p.classifier.Classify(note.Text)
	if err != nil {
		observability.ClassificationFailures.Inc()
		if errors.Is(err, models.ErrClassificationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrClassificationFailed, err)
	}
	if len(scores) == 0 {
		observability.ClassificationFailures.Inc()
		return nil, fmt.Errorf("%w: classifier returned no labels", models.ErrClassificationFailed)
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	// Canonical label order keeps the derived event sequence deterministic.
	for _, label := range models.Labels {
		score, ok := scores[label]
		if !ok || score < mean {
			continue
		}
		if _, err := p.RecordEmotion(ctx, userID, label, false); err != nil {
			return nil, fmt.Errorf("record derived emotion %s: %w", label, err)
		}
	}

	return p.store.GetUser(ctx, userID)
}

// RecordEmotion appends an emotion event stamped with the current time and
// refreshes the cached current_emotion scalar. When isDevice is set, id is a
// secondary device identifier and is resolved to the primary user id first.
func (p *Pipeline) RecordEmotion(ctx context.Context, id string, emotion models.EmotionLabel, isDevice bool) (*models.User, error) {
	label := models.EmotionLabel(strings.ToLower(strings.TrimSpace(string(emotion))))

	if isDevice {
		u, err := p.store.GetUserByDevice(ctx, id)
		if err != nil {
			return nil, err
		}
		id = u.ID
	}

	event := models.EmotionEvent{
		Emotion:  label,
		Captured: p.now().Unix(),
	}
	if err := p.store.AppendEmotion(ctx, id, event); err != nil {
		return nil, err
	}
	observability.EmotionsRecorded.WithLabelValues(string(label)).Inc()

	return p.store.GetUser(ctx, id)
}

// WeeklyHistogram aggregates the user's emotion events over the rolling week
// containing the current instant. A user with no events at all fails with
// models.ErrNoEmotionData so callers can prompt for a first capture; a user
// whose events all predate the window gets an empty histogram.
func (p *Pipeline) WeeklyHistogram(ctx context.Context, userID string) (models.Histogram, error) {
	u, err := p.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(u.States) == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, models.ErrNoEmotionData)
	}

	start, end := WeekBounds(p.now())
	return Aggregate(u.States, start, end), nil
}
