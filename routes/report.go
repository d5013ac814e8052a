package routes

import (
	"edumaster/controllers"
	"edumaster/internal/limiter"
	"edumaster/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupReportRoutes registers the AI panels behind the per-client rate limit
func SetupReportRoutes(router *gin.RouterGroup, ctrl *controllers.ReportController, rl *limiter.RateLimiter) {
	router.POST("/reports", middlewares.RateLimitMiddleware(rl, "report"), ctrl.GenerateReport)
	router.POST("/reports/voice", middlewares.RateLimitMiddleware(rl, "voice"), ctrl.GenerateVoice)
}

func SetupAudioRoutes(router *gin.RouterGroup, ctrl *controllers.AudioController) {
	router.POST("/audio/decode", ctrl.DecodeAudio)
}
