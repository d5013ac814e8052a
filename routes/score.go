package routes

import (
	"edumaster/controllers"

	"github.com/gin-gonic/gin"
)

func SetupScoreRoutes(router *gin.RouterGroup, ctrl *controllers.ScoreController) {
	router.GET("/scores", ctrl.GetScores)
	router.PUT("/scores", ctrl.UpsertScore)
	router.GET("/gradebook/:subjectId/export", ctrl.ExportGradebook)
}
