package routes

import (
	"edumaster/controllers"

	"github.com/gin-gonic/gin"
)

func SetupSessionRoutes(router *gin.RouterGroup, ctrl *controllers.SessionController) {
	router.GET("/session/:id/view", ctrl.GetView)
	router.PUT("/session/:id/view", ctrl.SelectView)
}
