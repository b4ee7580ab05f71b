package dto

import (
	"time"

	"github.com/your-org/emoup/internal/models"
)

type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	DeviceID string          `json:"device_id"`
	Address  *models.Address `json:"address"`
	Birth    string          `json:"birth"` // YYYY-MM-DD
}

// UpdateUserRequest carries only the fields to change; nil means untouched.
type UpdateUserRequest struct {
	Name       *string         `json:"name"`
	Password   *string         `json:"password"`
	DeviceID   *string         `json:"device_id"`
	Address    *models.Address `json:"address"`
	Birth      *string         `json:"birth"`
	ProfilePic *string         `json:"profile_pic"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Status bool   `json:"status"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type UserResponse struct {
	UserID         string                `json:"user_id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	DeviceID       string                `json:"device_id,omitempty"`
	Address        *models.Address       `json:"address,omitempty"`
	Birth          string                `json:"birth,omitempty"`
	Age            *int                  `json:"age,omitempty"`
	ProfilePic     string                `json:"profile_pic,omitempty"`
	CurrentEmotion models.EmotionLabel   `json:"current_emotion,omitempty"`
	States         []models.EmotionEvent `json:"states,omitempty"`
	Notes          []models.Note         `json:"notes,omitempty"`
	DeepFake       *models.DeepFake      `json:"deepfake,omitempty"`
	Created        int64                 `json:"created"`
	Updated        int64                 `json:"updated"`
}

// NewUserResponse maps a user document to its response body, deriving the
// current age from the date of birth when one is set.
func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		UserID:         u.ID,
		Name:           u.Name,
		Email:          u.Email,
		DeviceID:       u.DeviceID,
		Address:        u.Address,
		Birth:          u.Birth,
		ProfilePic:     u.ProfilePic,
		CurrentEmotion: u.CurrentEmotion,
		States:         u.States,
		Notes:          u.Notes,
		DeepFake:       u.DeepFake,
		Created:        u.Created,
		Updated:        u.Updated,
	}
	if u.Birth != "" {
		if birth, err := time.Parse("2006-01-02", u.Birth); err == nil {
			age := yearsSince(birth, time.Now())
			resp.Age = &age
		}
	}
	return resp
}

func yearsSince(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
