package models

// RenderTask is the message published to NATS when a deepfake render is
// requested. The worker resolves the media keys from MinIO, calls the render
// service and writes the output back onto the user document.
type RenderTask struct {
	UserID    string `json:"user_id"`
	ImageKey  string `json:"image_key"`
	VoiceKey  string `json:"voice_key"`
	Requested int64  `json:"requested"`
}
