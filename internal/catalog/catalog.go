// Package catalog builds the music catalog: it reads track dumps with audio
// features, partitions them into three clusters by feature similarity and
// loads them into the document store for the recommender to sample.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/your-org/emoup/internal/models"
	"github.com/your-org/emoup/internal/storage"
)

// ErrTooFewTracks is returned when the dump holds fewer tracks than clusters.
var ErrTooFewTracks = errors.New("too few tracks to cluster")

// Track is one row of a catalog dump. The four audio features are the
// clustering coordinates.
type Track struct {
	SpotifyID    string
	Name         string
	URL          string
	Energy       float64
	Valence      float64
	Danceability float64
	Acousticness float64
}

// featureColumns are the required numeric columns, in coordinate order.
var featureColumns = []string{"energy", "valence", "danceability", "acousticness"}

// ReadCSV parses a catalog dump. The first row is a header; spotify_id and
// the four feature columns are required, name and url are optional.
func ReadCSV(r io.Reader) ([]Track, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["spotify_id"]; !ok {
		return nil, fmt.Errorf("missing column spotify_id")
	}
	for _, name := range featureColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %s", name)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var tracks []Track
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++

		t := Track{
			SpotifyID: field(row, "spotify_id"),
			Name:      field(row, "name"),
			URL:       field(row, "url"),
		}
		if t.SpotifyID == "" {
			continue
		}

		features := make([]float64, len(featureColumns))
		bad := false
		for i, name := range featureColumns {
			v, err := strconv.ParseFloat(field(row, name), 64)
			if err != nil {
				slog.Warn("skipping track with bad feature", "spotify_id", t.SpotifyID, "column", name)
				bad = true
				break
			}
			features[i] = v
		}
		if bad {
			continue
		}

		t.Energy = features[0]
		t.Valence = features[1]
		t.Danceability = features[2]
		t.Acousticness = features[3]
		tracks = append(tracks, t)
	}

	return tracks, nil
}

// trackObservation wraps a Track to satisfy clusters.Observation.
type trackObservation struct {
	track  *Track
	coords clusters.Coordinates
}

func (o trackObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o trackObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

func coordinates(t *Track) clusters.Coordinates {
	return clusters.Coordinates{t.Energy, t.Valence, t.Danceability, t.Acousticness}
}

// Assigned pairs a track with its cluster id.
type Assigned struct {
	Track   Track
	Cluster string
}

// AssignClusters partitions tracks into as many clusters as there are cluster
// ids, then labels the partitions by increasing centroid energy so cluster 0
// holds the calmest tracks and the last cluster the most energetic ones.
func AssignClusters(tracks []Track) ([]Assigned, error) {
	k := len(models.MusicClusters)
	if len(tracks) < k {
		return nil, fmt.Errorf("%w: %d tracks, need at least %d", ErrTooFewTracks, len(tracks), k)
	}

	var obs clusters.Observations
	for i := range tracks {
		obs = append(obs, trackObservation{
			track:  &tracks[i],
			coords: coordinates(&tracks[i]),
		})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("partition tracks: %w", err)
	}

	// Order partitions by centroid energy (first coordinate) so cluster
	// ids are stable across runs.
	order := make([]int, len(result))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return result[order[a]].Center[0] < result[order[b]].Center[0]
	})

	var assigned []Assigned
	for rank, idx := range order {
		id := models.MusicClusters[rank]
		for _, o := range result[idx].Observations {
			to, ok := o.(trackObservation)
			if !ok {
				continue
			}
			assigned = append(assigned, Assigned{Track: *to.track, Cluster: id})
		}
	}

	return assigned, nil
}

// Import writes assigned tracks into the catalog collection. Duplicate
// spotify ids already present are skipped, not overwritten.
func Import(ctx context.Context, db *storage.MongoStore, assigned []Assigned) (int, error) {
	now := time.Now().Unix()
	imported := 0

	for _, a := range assigned {
		m := &models.Music{
			ID:        uuid.NewString(),
			SpotifyID: a.Track.SpotifyID,
			Name:      a.Track.Name,
			URL:       a.Track.URL,
			Cluster:   a.Cluster,
			Created:   now,
			Updated:   now,
		}
		if err := db.CreateMusic(ctx, m); err != nil {
			if errors.Is(err, models.ErrAlreadyExists) {
				slog.Debug("skipping duplicate track", "spotify_id", a.Track.SpotifyID)
				continue
			}
			return imported, fmt.Errorf("store track %s: %w", a.Track.SpotifyID, err)
		}
		imported++
	}

	return imported, nil
}
