package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"edumaster/config"
	"edumaster/controllers"
	"edumaster/db"
	"edumaster/internal/limiter"
	"edumaster/models"
	"edumaster/routes"
	"edumaster/services"
	"edumaster/utils"
	"edumaster/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// app holds the process-wide state shared by every handler
type app struct {
	store    *db.Store
	hub      *websocket.Hub
	requests *services.RequestTracker
	views    *services.ViewSelector
	reports  *services.ReportService
	voice    *services.VoiceService
	limiter  *limiter.RateLimiter
}

func main() {
	config.LoadEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yml"
	}

	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}

	ctx := context.Background()
	gemini, err := services.NewGeminiClient(ctx, cfg.Gemini.ApiKey, cfg.Gemini.BaseURL)
	if err != nil {
		log.Printf("Gemini client unavailable, AI panels will return fallbacks: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = limiter.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Rate limiting disabled: %v", err)
		} else {
			log.Println("Connected to Redis")
			defer rdb.Close()
		}
	}

	a := newApp(cfg, gemini, gemini, rdb)
	if cfg.Seed {
		utils.SeedSchoolData(a.store)
	}

	// Set up the Gin router and configure routes
	router := setupRouter(cfg, a)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newApp(cfg *config.Config, text services.TextGenerator, speech services.SpeechSynthesizer, rdb *redis.Client) *app {
	a := &app{
		store:    db.NewStore(),
		hub:      websocket.NewHub(),
		requests: services.NewRequestTracker(),
	}
	a.store.Subscribe(func(e models.Event) { a.hub.Broadcast(e) })
	a.views = services.NewViewSelector(a.requests, a.hub.Broadcast)
	a.reports = services.NewReportService(text, cfg.Gemini.TextModel, *cfg.Gemini.Temperature)
	a.voice = services.NewVoiceService(speech, services.VoiceConfig{
		Model:       cfg.Gemini.SpeechModel,
		MaxChars:    cfg.Voice.MaxChars,
		SampleRate:  cfg.Voice.SampleRate,
		Channels:    cfg.Voice.Channels,
		MaleVoice:   cfg.Voice.MaleVoice,
		FemaleVoice: cfg.Voice.FemaleVoice,
	})
	a.limiter = limiter.NewRateLimiter(rdb, limiter.Config{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
	})
	return a
}

func setupRouter(cfg *config.Config, a *app) *gin.Engine {
	if err := controllers.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}
	router := gin.Default()

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-RateLimit-Remaining"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "clients": a.hub.ClientCount()})
	})

	api := router.Group("/api")
	{
		routes.SetupSchoolRoutes(api, &controllers.SchoolController{Store: a.store})
		routes.SetupScoreRoutes(api, &controllers.ScoreController{Store: a.store})
		routes.SetupSessionRoutes(api, &controllers.SessionController{Views: a.views})
		routes.SetupReportRoutes(api, &controllers.ReportController{
			Store:    a.store,
			Reports:  a.reports,
			Voice:    a.voice,
			Requests: a.requests,
			Events:   a.hub.Broadcast,
		}, a.limiter)
		routes.SetupAudioRoutes(api, &controllers.AudioController{
			SampleRate: cfg.Voice.SampleRate,
			Channels:   cfg.Voice.Channels,
		})
	}

	// Live view updates
	router.GET("/ws", websocket.ViewWebSocketHandler(a.hub, a.views))

	return router
}
