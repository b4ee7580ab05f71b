package handlers

import (
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/your-org/emoup/internal/models"
	"github.com/your-org/emoup/internal/observability"
	"github.com/your-org/emoup/internal/queue"
	"github.com/your-org/emoup/internal/storage"
	"github.com/your-org/emoup/pkg/dto"
)

type DeepfakeHandler struct {
	db         *storage.MongoStore
	media      *storage.MediaStore
	producer   *queue.Producer
	publicBase string
}

func NewDeepfakeHandler(db *storage.MongoStore, media *storage.MediaStore, producer *queue.Producer, publicBase string) *DeepfakeHandler {
	return &DeepfakeHandler{db: db, media: media, producer: producer, publicBase: publicBase}
}

// UploadImage stores the source picture for a user's deepfake render.
func (h *DeepfakeHandler) UploadImage(c *gin.Context) {
	id := c.Param("id")

	user, err := h.db.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read image failed"})
		return
	}

	key := storage.DeepfakeKey(user.ID, "image"+path.Ext(header.Filename))
	if err := h.media.PutObject(c.Request.Context(), key, data, header.Header.Get("Content-Type")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store image failed"})
		return
	}

	fields := bson.M{
		"deepfake.image": h.publicBase + "/" + key,
		"deepfake.name":  header.Filename,
		"updated":        time.Now().Unix(),
	}
	if err := h.db.SetUserFields(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}

	h.respondWithUser(c, id)
}

// UploadVoice stores the voice sample for a user's deepfake render.
func (h *DeepfakeHandler) UploadVoice(c *gin.Context) {
	id := c.Param("id")

	user, err := h.db.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("voice")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voice file required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read voice failed"})
		return
	}

	key := storage.DeepfakeKey(user.ID, "voice"+path.Ext(header.Filename))
	if err := h.media.PutObject(c.Request.Context(), key, data, header.Header.Get("Content-Type")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store voice failed"})
		return
	}

	fields := bson.M{
		"deepfake.voice": h.publicBase + "/" + key,
		"updated":        time.Now().Unix(),
	}
	if err := h.db.SetUserFields(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}

	h.respondWithUser(c, id)
}

// Trigger queues a render job for the worker. Both source files must be
// uploaded first.
func (h *DeepfakeHandler) Trigger(c *gin.Context) {
	id := c.Param("id")

	user, err := h.db.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	df := user.DeepFake
	if df == nil || df.Image == "" || df.Voice == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "deepfake image and voice must be uploaded first"})
		return
	}

	task := models.RenderTask{
		UserID:    user.ID,
		ImageKey:  h.objectKey(df.Image),
		VoiceKey:  h.objectKey(df.Voice),
		Requested: time.Now().Unix(),
	}
	if err := h.producer.PublishRender(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "queue render failed"})
		return
	}
	observability.RendersQueued.Inc()

	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

// objectKey strips the public base from a stored media URL, recovering the
// bucket key the worker reads from.
func (h *DeepfakeHandler) objectKey(mediaURL string) string {
	return strings.TrimPrefix(mediaURL, h.publicBase+"/")
}

func (h *DeepfakeHandler) respondWithUser(c *gin.Context, id string) {
	user, err := h.db.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
