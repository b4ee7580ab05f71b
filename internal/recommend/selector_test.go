package recommend

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/your-org/emoup/internal/models"
)

type fakeStore struct {
	user     *models.User
	clusters map[string][]models.Music
}

func (s *fakeStore) GetUser(_ context.Context, id string) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, models.NotFound(id)
	}
	copied := *s.user
	return &copied, nil
}

func (s *fakeStore) TracksByCluster(_ context.Context, cluster string) ([]models.Music, error) {
	return s.clusters[cluster], nil
}

func catalog(perCluster int) map[string][]models.Music {
	out := make(map[string][]models.Music)
	for _, cluster := range models.MusicClusters {
		for i := 0; i < perCluster; i++ {
			out[cluster] = append(out[cluster], models.Music{
				ID:      cluster + "-" + string(rune('a'+i)),
				Cluster: cluster,
			})
		}
	}
	return out
}

func newTestSelector(store Store) *Selector {
	s := NewSelector(store)
	s.rnd = rand.New(rand.NewSource(1))
	s.now = func() time.Time { return time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestPlanFor(t *testing.T) {
	tests := []struct {
		emotion models.EmotionLabel
		want    [3]int
	}{
		{models.EmotionSad, [3]int{3, 4, 3}},
		{models.EmotionAngry, [3]int{3, 4, 3}},
		{models.EmotionDisgust, [3]int{3, 4, 3}},
		{models.EmotionNeutral, [3]int{1, 6, 3}},
		{models.EmotionFear, [3]int{1, 6, 3}},
		{models.EmotionHappy, [3]int{1, 4, 5}},
		{models.EmotionSurprise, [3]int{1, 4, 5}},
	}

	for _, tt := range tests {
		got := PlanFor(tt.emotion)
		if got != tt.want {
			t.Errorf("PlanFor(%s) = %v, want %v", tt.emotion, got, tt.want)
		}
		total := got[0] + got[1] + got[2]
		if total != 10 {
			t.Errorf("PlanFor(%s) totals %d, want 10", tt.emotion, total)
		}
	}
}

func TestRecommend(t *testing.T) {
	countByCluster := func(p models.Playlist) map[string]int {
		counts := make(map[string]int)
		for _, m := range p {
			counts[m.Cluster]++
		}
		return counts
	}

	t.Run("follows the sad plan", func(t *testing.T) {
		store := &fakeStore{
			user:     &models.User{ID: "u1", CurrentEmotion: models.EmotionSad},
			clusters: catalog(5),
		}
		s := newTestSelector(store)

		playlist, err := s.Recommend(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(playlist) != 10 {
			t.Fatalf("playlist length = %d, want 10", len(playlist))
		}
		counts := countByCluster(playlist)
		if counts["0"] != 3 || counts["1"] != 4 || counts["2"] != 3 {
			t.Errorf("cluster counts = %v, want 3/4/3", counts)
		}
	})

	t.Run("tracks stay within their cluster", func(t *testing.T) {
		store := &fakeStore{
			user:     &models.User{ID: "u1", CurrentEmotion: models.EmotionHappy},
			clusters: catalog(3),
		}
		s := newTestSelector(store)

		playlist, err := s.Recommend(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		// Plan 1/4/5: the first track is from cluster 0, the last from 2.
		if playlist[0].Cluster != "0" {
			t.Errorf("first track cluster = %s, want 0", playlist[0].Cluster)
		}
		if playlist[len(playlist)-1].Cluster != "2" {
			t.Errorf("last track cluster = %s, want 2", playlist[len(playlist)-1].Cluster)
		}
	})

	t.Run("single-track cluster repeats with replacement", func(t *testing.T) {
		store := &fakeStore{
			user:     &models.User{ID: "u1", CurrentEmotion: models.EmotionNeutral},
			clusters: catalog(1),
		}
		s := newTestSelector(store)

		playlist, err := s.Recommend(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(playlist) != 10 {
			t.Errorf("playlist length = %d, want 10", len(playlist))
		}
	})

	t.Run("empty cluster shortens the playlist", func(t *testing.T) {
		clusters := catalog(4)
		delete(clusters, models.ClusterCalm)
		store := &fakeStore{
			user:     &models.User{ID: "u1", CurrentEmotion: models.EmotionSad},
			clusters: clusters,
		}
		s := newTestSelector(store)

		playlist, err := s.Recommend(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(playlist) != 7 {
			t.Errorf("playlist length = %d, want 7 (3 calm draws dropped)", len(playlist))
		}
	})

	t.Run("empty catalog yields an empty playlist", func(t *testing.T) {
		store := &fakeStore{
			user:     &models.User{ID: "u1", CurrentEmotion: models.EmotionSad},
			clusters: map[string][]models.Music{},
		}
		s := newTestSelector(store)

		playlist, err := s.Recommend(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(playlist) != 0 {
			t.Errorf("playlist length = %d, want 0", len(playlist))
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		s := newTestSelector(&fakeStore{clusters: catalog(2)})
		_, err := s.Recommend(context.Background(), "ghost")
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestResolveEmotion(t *testing.T) {
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		user *models.User
		want models.EmotionLabel
	}{
		{
			name: "cached current emotion wins",
			user: &models.User{
				CurrentEmotion: models.EmotionAngry,
				States: []models.EmotionEvent{
					{Emotion: models.EmotionHappy, Captured: monday.Unix()},
				},
			},
			want: models.EmotionAngry,
		},
		{
			name: "falls back to the weekly dominant",
			user: &models.User{
				States: []models.EmotionEvent{
					{Emotion: models.EmotionSad, Captured: monday.Unix()},
					{Emotion: models.EmotionSad, Captured: monday.AddDate(0, 0, 1).Unix()},
					{Emotion: models.EmotionHappy, Captured: monday.AddDate(0, 0, 2).Unix()},
				},
			},
			want: models.EmotionSad,
		},
		{
			name: "stale history falls back to neutral",
			user: &models.User{
				States: []models.EmotionEvent{
					{Emotion: models.EmotionSad, Captured: monday.AddDate(0, 0, -30).Unix()},
				},
			},
			want: models.EmotionNeutral,
		},
		{
			name: "no signal at all",
			user: &models.User{},
			want: models.EmotionNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSelector(&fakeStore{})
			if got := s.resolveEmotion(tt.user); got != tt.want {
				t.Errorf("resolveEmotion() = %q, want %q", got, tt.want)
			}
		})
	}
}
