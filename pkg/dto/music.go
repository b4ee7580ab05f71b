package dto

type CreateMusicRequest struct {
	SpotifyID     string `json:"spotify_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	URL           string `json:"url"`
	Cluster       string `json:"cluster" binding:"required"`
	NumberOfLikes int    `json:"number_of_likes"`
}

type UpdateMusicRequest struct {
	Name          *string `json:"name"`
	URL           *string `json:"url"`
	Cluster       *string `json:"cluster"`
	NumberOfLikes *int    `json:"number_of_likes"`
}
