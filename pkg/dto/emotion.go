package dto

// NoteRequest is the body of POST /users/:id/notes.
type NoteRequest struct {
	Note  string `json:"note" binding:"required"`
	Color string `json:"color"`
}

// EmotionRequest is the body of POST /users/:id/emotion. The id in the path
// is a device identifier when the device query flag is set.
type EmotionRequest struct {
	Emotion string `json:"emotion" binding:"required"`
}

// WeeklyStatsResponse is the weekly emotion histogram together with the
// window it was computed over.
type WeeklyStatsResponse struct {
	WeekStart int64          `json:"week_start"`
	WeekEnd   int64          `json:"week_end"`
	Emotions  map[string]int `json:"emotions"`
}
