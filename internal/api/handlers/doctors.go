package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/your-org/emoup/internal/models"
	"github.com/your-org/emoup/internal/storage"
	"github.com/your-org/emoup/pkg/dto"
)

// searchThreshold is the minimum name similarity for a doctor to appear in
// search results.
const searchThreshold = 0.6

type DoctorHandler struct {
	db *storage.MongoStore
}

func NewDoctorHandler(db *storage.MongoStore) *DoctorHandler {
	return &DoctorHandler{db: db}
}

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.db.ListDoctors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors, "total": len(doctors)})
}

func (h *DoctorHandler) Get(c *gin.Context) {
	doctor, err := h.db.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req dto.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().Unix()
	doctor := &models.Doctor{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Gender:            req.Gender,
		Mobile:            req.Mobile,
		Degree:            req.Degree,
		ConsultationPlace: req.ConsultationPlace,
		AboutDoctor:       req.AboutDoctor,
		ServicesProvided:  req.ServicesProvided,
		Address:           req.Address,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Ratings:           req.Ratings,
		Created:           now,
		Updated:           now,
	}

	if err := h.db.CreateDoctor(c.Request.Context(), doctor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	var req dto.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{"updated": time.Now().Unix()}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.Mobile != nil {
		fields["mobile"] = *req.Mobile
	}
	if req.Degree != nil {
		fields["degree"] = *req.Degree
	}
	if req.ConsultationPlace != nil {
		fields["consultation_place"] = *req.ConsultationPlace
	}
	if req.AboutDoctor != nil {
		fields["about_doctor"] = *req.AboutDoctor
	}
	if req.ServicesProvided != nil {
		fields["services_provided"] = *req.ServicesProvided
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}
	if req.Ratings != nil {
		fields["ratings"] = *req.Ratings
	}
	if req.ProfilePic != nil {
		fields["profile_pic"] = *req.ProfilePic
	}

	if err := h.db.SetDoctorFields(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	if err := h.db.DeleteDoctor(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search ranks doctors by name similarity to the query. Fuzzy rather than
// prefix matching, since callers type half-remembered names.
func (h *DoctorHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q required"})
		return
	}

	doctors, err := h.db.ListDoctors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	type scored struct {
		doctor models.Doctor
		score  float64
	}

	metric := metrics.NewJaroWinkler()
	var matches []scored
	for _, d := range doctors {
		score := strutil.Similarity(strings.ToLower(query), strings.ToLower(d.Name), metric)
		if score >= searchThreshold {
			matches = append(matches, scored{doctor: d, score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	results := make([]models.Doctor, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.doctor)
	}
	c.JSON(http.StatusOK, gin.H{"doctors": results, "total": len(results)})
}
