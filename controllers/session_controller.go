package controllers

import (
	"net/http"

	"edumaster/models"
	"edumaster/services"

	"github.com/gin-gonic/gin"
)

// SessionController exposes the view selector of each UI session
type SessionController struct {
	Views *services.ViewSelector
}

type selectViewRequest struct {
	View models.View `json:"view" binding:"required"`
}

func (sc *SessionController) GetView(c *gin.Context) {
	session := c.Param("id")
	c.JSON(http.StatusOK, gin.H{"sessionId": session, "view": sc.Views.Current(session)})
}

func (sc *SessionController) SelectView(c *gin.Context) {
	var req selectViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	session := c.Param("id")
	if err := sc.Views.Select(session, req.View); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": session, "view": req.View})
}
