// Package deepfake handles render jobs: it feeds the user's uploaded image
// and voice sample to the external render service and stores the output.
package deepfake

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/your-org/emoup/internal/models"
	"github.com/your-org/emoup/internal/observability"
	"github.com/your-org/emoup/internal/storage"
)

// Renderer processes one render task end to end. The render service itself
// is an external collaborator reached over HTTP; a failed render leaves the
// already-uploaded media in place.
type Renderer struct {
	db         *storage.MongoStore
	media      *storage.MediaStore
	renderURL  string
	publicBase string
	httpClient *http.Client
}

func NewRenderer(db *storage.MongoStore, media *storage.MediaStore, renderURL, publicBase string) *Renderer {
	return &Renderer{
		db:         db,
		media:      media,
		renderURL:  renderURL,
		publicBase: publicBase,
		httpClient: &http.Client{
			Timeout: 4 * time.Minute,
		},
	}
}

// Process fetches the task's source media, renders, stores the output under
// the user's upload prefix and points deepfake.output at it.
func (r *Renderer) Process(ctx context.Context, task models.RenderTask) error {
	if r.renderURL == "" {
		return fmt.Errorf("render service not configured")
	}

	started := time.Now()

	image, err := r.media.GetObject(ctx, task.ImageKey)
	if err != nil {
		return fmt.Errorf("load source image: %w", err)
	}
	voice, err := r.media.GetObject(ctx, task.VoiceKey)
	if err != nil {
		return fmt.Errorf("load source voice: %w", err)
	}

	output, err := r.render(ctx, image, voice)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	outputKey := storage.DeepfakeKey(task.UserID, "output.mp4")
	if err := r.media.PutObject(ctx, outputKey, output, "video/mp4"); err != nil {
		return fmt.Errorf("store render output: %w", err)
	}

	err = r.db.SetUserFields(ctx, task.UserID, bson.M{
		"deepfake.output": r.publicBase + "/" + outputKey,
		"updated":         time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("record render output: %w", err)
	}

	observability.RenderDuration.Observe(time.Since(started).Seconds())
	return nil
}

func (r *Renderer) render(ctx context.Context, image, voice []byte) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", "image.png")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}

	part, err = writer.CreateFormFile("voice", "voice.wav")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(voice); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.renderURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render service returned HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
