package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/your-org/emoup/internal/config"
)

// batchSize is the maximum ids per GetTracks call allowed by the API.
const batchSize = 50

// Enricher fills in track names and URLs that the dump left blank.
type Enricher struct {
	client *spotify.Client
}

// NewEnricher builds a client-credentials Spotify client. No user scopes are
// needed for catalog metadata.
func NewEnricher(ctx context.Context, cfg config.SpotifyConfig) (*Enricher, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("spotify credentials not configured")
	}

	conf := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	httpClient := conf.Client(ctx)

	return &Enricher{client: spotify.New(httpClient, spotify.WithRetry(true))}, nil
}

// Enrich looks up metadata for tracks missing a name and fills in name and
// URL in place. Tracks the API does not know stay as they are.
func (e *Enricher) Enrich(ctx context.Context, tracks []Track) error {
	byID := make(map[spotify.ID]*Track)
	var ids []spotify.ID
	for i := range tracks {
		if tracks[i].Name != "" {
			continue
		}
		id := spotify.ID(tracks[i].SpotifyID)
		byID[id] = &tracks[i]
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	for i := 0; i < len(ids); i += batchSize {
		end := i + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		full, err := e.client.GetTracks(ctx, ids[i:end])
		if err != nil {
			return fmt.Errorf("get tracks: %w", err)
		}

		for _, ft := range full {
			if ft == nil {
				continue
			}
			t, ok := byID[ft.ID]
			if !ok {
				continue
			}
			t.Name = ft.Name
			if url, ok := ft.ExternalURLs["spotify"]; ok {
				t.URL = url
			}
		}
	}

	slog.Info("enriched catalog metadata", "looked_up", len(ids))
	return nil
}
