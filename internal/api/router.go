package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/emoup/internal/api/handlers"
	"github.com/your-org/emoup/internal/auth"
	"github.com/your-org/emoup/internal/emotion"
	"github.com/your-org/emoup/internal/queue"
	"github.com/your-org/emoup/internal/quotes"
	"github.com/your-org/emoup/internal/recommend"
	"github.com/your-org/emoup/internal/storage"
	"github.com/your-org/emoup/internal/wordcloud"
)

type RouterConfig struct {
	APIKey        string
	PublicBaseURL string
	DB            *storage.MongoStore
	Media         *storage.MediaStore
	Producer      *queue.Producer
	Pipeline      *emotion.Pipeline
	Selector      *recommend.Selector
	Quotes        *quotes.Client
	WordCloud     *wordcloud.Renderer
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.DB, cfg.Media, cfg.Producer)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 (with auth)
	v1 := r.Group("/v1")
	v1.Use(auth.APIKeyMiddleware(cfg.APIKey))

	// Users
	userH := handlers.NewUserHandler(cfg.DB, cfg.Media, cfg.PublicBaseURL)
	v1.GET("/users", userH.List)
	v1.POST("/users", userH.Create)
	v1.POST("/users/login", userH.Login)
	v1.GET("/users/:id", userH.Get)
	v1.PATCH("/users/:id", userH.Update)
	v1.DELETE("/users/:id", userH.Delete)
	v1.POST("/users/:id/picture", userH.UploadPicture)

	// Emotion pipeline
	wellbeingH := handlers.NewWellbeingHandler(
		cfg.DB, cfg.Media, cfg.Pipeline, cfg.Selector, cfg.Quotes, cfg.WordCloud, cfg.PublicBaseURL)
	v1.POST("/users/:id/notes", wellbeingH.AddNote)
	v1.POST("/users/:id/emotion", wellbeingH.RecordEmotion)
	v1.GET("/users/:id/emotions/weekly", wellbeingH.WeeklyStats)
	v1.GET("/users/:id/recommendation", wellbeingH.Recommend)
	v1.GET("/users/:id/quote", wellbeingH.Quote)
	v1.GET("/users/:id/wordcloud", wellbeingH.WordCloud)

	// Deepfake
	deepfakeH := handlers.NewDeepfakeHandler(cfg.DB, cfg.Media, cfg.Producer, cfg.PublicBaseURL)
	v1.POST("/users/:id/deepfake/image", deepfakeH.UploadImage)
	v1.POST("/users/:id/deepfake/voice", deepfakeH.UploadVoice)
	v1.POST("/users/:id/deepfake", deepfakeH.Trigger)

	// Doctors
	doctorH := handlers.NewDoctorHandler(cfg.DB)
	v1.GET("/doctors", doctorH.List)
	v1.GET("/doctors/search", doctorH.Search)
	v1.POST("/doctors", doctorH.Create)
	v1.GET("/doctors/:id", doctorH.Get)
	v1.PATCH("/doctors/:id", doctorH.Update)
	v1.DELETE("/doctors/:id", doctorH.Delete)

	// Musics
	musicH := handlers.NewMusicHandler(cfg.DB)
	v1.GET("/musics", musicH.List)
	v1.POST("/musics", musicH.Create)
	v1.GET("/musics/:id", musicH.Get)
	v1.PATCH("/musics/:id", musicH.Update)
	v1.DELETE("/musics/:id", musicH.Delete)

	return r
}
