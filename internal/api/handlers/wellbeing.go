package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/emoup/internal/emotion"
	"github.com/your-org/emoup/internal/models"
	"github.com/your-org/emoup/internal/quotes"
	"github.com/your-org/emoup/internal/recommend"
	"github.com/your-org/emoup/internal/storage"
	"github.com/your-org/emoup/internal/wordcloud"
	"github.com/your-org/emoup/pkg/dto"
)

// WellbeingHandler serves the emotion pipeline endpoints: notes, emotion
// capture, weekly stats, playlist recommendation, quotes and word clouds.
type WellbeingHandler struct {
	db         *storage.MongoStore
	media      *storage.MediaStore
	pipeline   *emotion.Pipeline
	selector   *recommend.Selector
	quotes     *quotes.Client
	wordcloud  *wordcloud.Renderer
	publicBase string
}

func NewWellbeingHandler(
	db *storage.MongoStore,
	media *storage.MediaStore,
	pipeline *emotion.Pipeline,
	selector *recommend.Selector,
	quotesClient *quotes.Client,
	wcRenderer *wordcloud.Renderer,
	publicBase string,
) *WellbeingHandler {
	return &WellbeingHandler{
		db:         db,
		media:      media,
		pipeline:   pipeline,
		selector:   selector,
		quotes:     quotesClient,
		wordcloud:  wcRenderer,
		publicBase: publicBase,
	}
}

// AddNote stores a note and feeds its text through the classifier; every
// label scoring at or above the mean becomes an emotion event.
func (h *WellbeingHandler) AddNote(c *gin.Context) {
	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note := models.Note{Text: req.Note, Color: req.Color}
	user, err := h.pipeline.IngestNote(c.Request.Context(), c.Param("id"), note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// RecordEmotion captures an explicitly reported emotion. With ?device=true
// the path id is a device identifier instead of a user id.
func (h *WellbeingHandler) RecordEmotion(c *gin.Context) {
	var req dto.EmotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isDevice := c.Query("device") == "true"
	user, err := h.pipeline.RecordEmotion(c.Request.Context(), c.Param("id"), models.EmotionLabel(req.Emotion), isDevice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *WellbeingHandler) WeeklyStats(c *gin.Context) {
	hist, err := h.pipeline.WeeklyHistogram(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	start, end := emotion.WeekBounds(time.Now())
	emotions := make(map[string]int, len(hist))
	for label, n := range hist {
		emotions[string(label)] = n
	}

	c.JSON(http.StatusOK, dto.WeeklyStatsResponse{
		WeekStart: start,
		WeekEnd:   end,
		Emotions:  emotions,
	})
}

func (h *WellbeingHandler) Recommend(c *gin.Context) {
	playlist, err := h.selector.Recommend(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlist": playlist, "total": len(playlist)})
}

// Quote returns a quote matched to the user's current emotion.
func (h *WellbeingHandler) Quote(c *gin.Context) {
	user, err := h.db.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	label := user.CurrentEmotion
	if label == "" {
		label = models.EmotionNeutral
	}

	quote, err := h.quotes.Random(c.Request.Context(), label)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "quote service unavailable"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// WordCloud renders the user's notes into a word-cloud image, stores it and
// returns its URL.
func (h *WellbeingHandler) WordCloud(c *gin.Context) {
	user, err := h.db.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	counts := wordcloud.WordCounts(user.Notes)
	if len(counts) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no notes to render"})
		return
	}

	image, err := h.wordcloud.Render(c.Request.Context(), counts)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "word cloud renderer unavailable"})
		return
	}

	key := storage.WordCloudKey(user.ID)
	if err := h.media.PutObject(c.Request.Context(), key, image, "image/png"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store word cloud failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": h.publicBase + "/" + key})
}
