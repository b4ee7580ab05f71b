package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/your-org/emoup/internal/auth"
	"github.com/your-org/emoup/internal/models"
	"github.com/your-org/emoup/internal/storage"
	"github.com/your-org/emoup/pkg/dto"
)

type UserHandler struct {
	db         *storage.MongoStore
	media      *storage.MediaStore
	publicBase string
}

func NewUserHandler(db *storage.MongoStore, media *storage.MediaStore, publicBase string) *UserHandler {
	return &UserHandler{db: db, media: media, publicBase: publicBase}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": resp, "total": len(resp)})
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.db.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now().Unix()
	user := &models.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		DeviceID: req.DeviceID,
		Address:  req.Address,
		Birth:    req.Birth,
		Created:  now,
		Updated:  now,
	}

	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{"updated": time.Now().Unix()}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		fields["password"] = hash
	}
	if req.DeviceID != nil {
		fields["device_id"] = *req.DeviceID
	}
	if req.Address != nil {
		fields["address"] = req.Address
	}
	if req.Birth != nil {
		fields["birth"] = *req.Birth
	}
	if req.ProfilePic != nil {
		fields["profile_pic"] = *req.ProfilePic
	}

	if err := h.db.SetUserFields(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.db.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	// Uploaded media goes with the profile. Failure here leaves orphaned
	// objects, not a broken user, so it only warrants a warning.
	if err := h.media.RemovePrefix(c.Request.Context(), storage.UserPrefix(id)); err != nil {
		slog.Warn("remove user uploads", "user_id", id, "error", err)
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Status: true,
		UserID: user.ID,
		Email:  user.Email,
	})
}

// UploadPicture accepts a multipart profile picture, stores it in the media
// store and points profile_pic at it.
func (h *UserHandler) UploadPicture(c *gin.Context) {
	id := c.Param("id")

	user, err := h.db.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "picture file required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read picture failed"})
		return
	}

	key := storage.ProfileKey(user.ID, "profile"+path.Ext(header.Filename))
	if err := h.media.PutObject(c.Request.Context(), key, data, header.Header.Get("Content-Type")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store picture failed"})
		return
	}

	fields := bson.M{
		"profile_pic": h.publicBase + "/" + key,
		"updated":     time.Now().Unix(),
	}
	if err := h.db.SetUserFields(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}

	user, err = h.db.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
