package models

// EmotionLabel is one of the closed set of affect categories tracked per user.
type EmotionLabel string

const (
	EmotionHappy    EmotionLabel = "happy"
	EmotionSad      EmotionLabel = "sad"
	EmotionAngry    EmotionLabel = "angry"
	EmotionFear     EmotionLabel = "fear"
	EmotionSurprise EmotionLabel = "surprise"
	EmotionDisgust  EmotionLabel = "disgust"
	EmotionNeutral  EmotionLabel = "neutral"
)

// Labels lists every emotion label in canonical order. Code that derives
// events from classifier scores iterates in this order so the result is
// deterministic.
var Labels = []EmotionLabel{
	EmotionHappy, EmotionSad, EmotionAngry, EmotionFear,
	EmotionSurprise, EmotionDisgust, EmotionNeutral,
}

// EmotionEvent is a single timestamped emotion observation. Events are
// append-only members of a user's states sequence and never mutated.
type EmotionEvent struct {
	Emotion  EmotionLabel `json:"emotion" bson:"emotion"`
	Captured int64        `json:"captured" bson:"captured"`
}

// Note is a free-text note captured by the user. Append-only.
type Note struct {
	Text     string `json:"note" bson:"note"`
	Color    string `json:"color" bson:"color"`
	Captured string `json:"captured" bson:"captured"`
}

// Address is the postal address subdocument of a user.
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zip_code" bson:"zip_code"`
}

// DeepFake holds the media references for a user's deepfake render:
// the source image and voice uploads, and the rendered output once the
// worker has produced it.
type DeepFake struct {
	Name   string `json:"name,omitempty" bson:"name,omitempty"`
	Image  string `json:"image,omitempty" bson:"image,omitempty"`
	Voice  string `json:"voice,omitempty" bson:"voice,omitempty"`
	Output string `json:"output,omitempty" bson:"output,omitempty"`
}

// User is the profile document. CurrentEmotion is a cached projection of the
// last element of States; the states sequence is the source of truth.
type User struct {
	ID             string         `json:"user_id" bson:"_id"`
	Name           string         `json:"name" bson:"name"`
	Email          string         `json:"email" bson:"email"`
	Password       []byte         `json:"-" bson:"password"`
	DeviceID       string         `json:"device_id,omitempty" bson:"device_id,omitempty"`
	Address        *Address       `json:"address,omitempty" bson:"address,omitempty"`
	Birth          string         `json:"birth,omitempty" bson:"birth,omitempty"`
	ProfilePic     string         `json:"profile_pic,omitempty" bson:"profile_pic,omitempty"`
	CurrentEmotion EmotionLabel   `json:"current_emotion,omitempty" bson:"current_emotion,omitempty"`
	States         []EmotionEvent `json:"states,omitempty" bson:"states,omitempty"`
	Notes          []Note         `json:"notes,omitempty" bson:"notes,omitempty"`
	DeepFake       *DeepFake      `json:"deepfake,omitempty" bson:"deepfake,omitempty"`
	Created        int64          `json:"created" bson:"created"`
	Updated        int64          `json:"updated" bson:"updated"`
}

// Histogram maps emotion labels to occurrence counts within a window.
// Computed on demand, never persisted.
type Histogram map[EmotionLabel]int

// Dominant returns the label with the highest count. Ties break in the
// canonical label order. Returns "" for an empty histogram.
func (h Histogram) Dominant() EmotionLabel {
	var best EmotionLabel
	bestCount := 0
	for _, label := range Labels {
		if h[label] > bestCount {
			best = label
			bestCount = h[label]
		}
	}
	return best
}
