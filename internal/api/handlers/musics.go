package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/your-org/emoup/internal/models"
	"github.com/your-org/emoup/internal/storage"
	"github.com/your-org/emoup/pkg/dto"
)

type MusicHandler struct {
	db *storage.MongoStore
}

func NewMusicHandler(db *storage.MongoStore) *MusicHandler {
	return &MusicHandler{db: db}
}

func (h *MusicHandler) List(c *gin.Context) {
	var (
		musics []models.Music
		err    error
	)
	if cluster := c.Query("cluster"); cluster != "" {
		musics, err = h.db.TracksByCluster(c.Request.Context(), cluster)
	} else {
		musics, err = h.db.ListMusics(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"musics": musics, "total": len(musics)})
}

func (h *MusicHandler) Get(c *gin.Context) {
	music, err := h.db.GetMusic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, music)
}

func (h *MusicHandler) Create(c *gin.Context) {
	var req dto.CreateMusicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().Unix()
	music := &models.Music{
		ID:            uuid.NewString(),
		SpotifyID:     req.SpotifyID,
		Name:          req.Name,
		URL:           req.URL,
		Cluster:       req.Cluster,
		NumberOfLikes: req.NumberOfLikes,
		Created:       now,
		Updated:       now,
	}

	if err := h.db.CreateMusic(c.Request.Context(), music); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, music)
}

func (h *MusicHandler) Update(c *gin.Context) {
	var req dto.UpdateMusicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{"updated": time.Now().Unix()}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.URL != nil {
		fields["url"] = *req.URL
	}
	if req.Cluster != nil {
		fields["cluster"] = *req.Cluster
	}
	if req.NumberOfLikes != nil {
		fields["number_of_likes"] = *req.NumberOfLikes
	}

	if err := h.db.SetMusicFields(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MusicHandler) Delete(c *gin.Context) {
	if err := h.db.DeleteMusic(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
