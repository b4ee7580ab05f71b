package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/your-org/emoup/internal/models"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", models.NotFound("u1"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get user: %w", models.NotFound("u1")), http.StatusNotFound},
		{"bare not found sentinel", models.ErrNotFound, http.StatusNotFound},
		{"already exists", fmt.Errorf("%w: a@b.c", models.ErrAlreadyExists), http.StatusConflict},
		{"invalid credentials", models.ErrInvalidCredentials, http.StatusUnauthorized},
		{"classification failed", fmt.Errorf("%w: no tokens", models.ErrClassificationFailed), http.StatusBadGateway},
		{"no emotion data", fmt.Errorf("user u1: %w", models.ErrNoEmotionData), http.StatusUnprocessableEntity},
		{"infrastructure failure", errors.New("mongo: connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	t.Run("not found echoes the identifier", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		respondError(c, fmt.Errorf("get user: %w", models.NotFound("u-42")))

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		if body["identifier"] != "u-42" {
			t.Errorf("identifier = %q, want u-42", body["identifier"])
		}
	})

	t.Run("infrastructure detail is not leaked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		respondError(c, errors.New("dial tcp 10.0.0.3:27017: i/o timeout"))

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		if body["error"] != "internal error" {
			t.Errorf("error = %q, want opaque message", body["error"])
		}
	})
}
