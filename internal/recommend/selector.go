// Package recommend selects cluster-weighted playlists from the music
// catalog, driven by the user's current emotion.
package recommend

import (
	"context"
	"math/rand"
	"time"

	"github.com/your-org/emoup/internal/emotion"
	"github.com/your-org/emoup/internal/models"
	"github.com/your-org/emoup/internal/observability"
)

// Store is the narrow contract the selector reads through.
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	TracksByCluster(ctx context.Context, cluster string) ([]models.Music, error)
}

// Selector draws playlists from the clustered catalog.
type Selector struct {
	store Store
	rnd   *rand.Rand
	now   func() time.Time
}

func NewSelector(store Store) *Selector {
	return &Selector{
		store: store,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// PlanFor maps an emotion to the per-cluster sample counts, in cluster order
// 0, 1, 2. Every plan totals ten tracks.
func PlanFor(e models.EmotionLabel) [3]int {
	switch e {
	case models.EmotionSad, models.EmotionAngry, models.EmotionDisgust:
		return [3]int{3, 4, 3}
	case models.EmotionNeutral, models.EmotionFear:
		return [3]int{1, 6, 3}
	default:
		return [3]int{1, 4, 5}
	}
}

// Recommend resolves the user's current emotion and draws a playlist
// according to its cluster plan. Draws are uniform with replacement within
// each cluster, so duplicates inside a cluster's contribution are allowed. A
// cluster with no eligible tracks contributes nothing, shortening the
// playlist rather than failing.
func (s *Selector) Recommend(ctx context.Context, userID string) (models.Playlist, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	label := s.resolveEmotion(u)
	plan := PlanFor(label)

	playlist := make(models.Playlist, 0, 10)
	for i, cluster := range models.MusicClusters {
		tracks, err := s.store.TracksByCluster(ctx, cluster)
		if err != nil {
			return nil, err
		}
		if len(tracks) == 0 {
			continue
		}
		for n := 0; n < plan[i]; n++ {
			playlist = append(playlist, tracks[s.rnd.Intn(len(tracks))])
		}
	}

	observability.PlaylistsRecommended.WithLabelValues(string(label)).Inc()
	return playlist, nil
}

// resolveEmotion prefers the cached current_emotion; when unset it falls
// back to the most frequent label in the current weekly window, and to
// neutral when there is no usable history at all.
func (s *Selector) resolveEmotion(u *models.User) models.EmotionLabel {
	if u.CurrentEmotion != "" {
		return u.CurrentEmotion
	}
	start, end := emotion.WeekBounds(s.now())
	if dominant := emotion.Aggregate(u.States, start, end).Dominant(); dominant != "" {
		return dominant
	}
	return models.EmotionNeutral
}
