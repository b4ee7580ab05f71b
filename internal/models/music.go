package models

// Music catalog cluster ids. The catalog is partitioned into three clusters
// by catalogctl; the recommendation selector samples across them.
const (
	ClusterCalm      = "0"
	ClusterNeutral   = "1"
	ClusterEnergetic = "2"
)

// MusicClusters lists the cluster ids in sampling order.
var MusicClusters = []string{ClusterCalm, ClusterNeutral, ClusterEnergetic}

// Music is a catalog track document. Immutable reference data.
type Music struct {
	ID            string `json:"music_id" bson:"_id"`
	SpotifyID     string `json:"spotify_id" bson:"spotify_id"`
	Name          string `json:"name" bson:"name"`
	URL           string `json:"url,omitempty" bson:"url,omitempty"`
	Cluster       string `json:"cluster" bson:"cluster"`
	NumberOfLikes int    `json:"number_of_likes" bson:"number_of_likes"`
	Created       int64  `json:"created" bson:"created"`
	Updated       int64  `json:"updated" bson:"updated"`
}

// Playlist is an ordered list of tracks returned by the recommender.
type Playlist []Music
