package controllers

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"edumaster/db"
	"edumaster/internal/audio"
	"edumaster/models"
	"edumaster/services"

	"github.com/gin-gonic/gin"
)

// ReportController runs the AI report and voice panels
type ReportController struct {
	Store    *db.Store
	Reports  *services.ReportService
	Voice    *services.VoiceService
	Requests *services.RequestTracker
	Events   services.EventSink
}

// sessionID identifies the caller's UI session, falling back to the client IP
func sessionID(c *gin.Context, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	if h := c.GetHeader("X-Session-ID"); h != "" {
		return h
	}
	return c.ClientIP()
}

func (rc *ReportController) GenerateReport(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	input, err := services.BuildAnalysisRequest(rc.Store, req.StudentID, req.Tone, req.Focus)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	session := sessionID(c, req.SessionID)
	tok, err := rc.Requests.Begin(session, services.PanelReport)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	text := rc.Reports.GenerateStudentReport(c.Request.Context(), input)
	if !rc.Requests.Complete(tok) {
		log.Printf("Discarding stale report for %s in session %s", req.StudentID, session)
		c.JSON(http.StatusConflict, gin.H{"error": "Request superseded by a view change"})
		return
	}

	resp := models.ReportResponse{StudentID: req.StudentID, Text: text}
	if rc.Events != nil {
		rc.Events(models.Event{
			Type:      models.EventReportReady,
			SessionID: session,
			Payload:   resp,
			Timestamp: time.Now(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateVoice reads text aloud and returns it as a WAV file. No content
// means the provider had no audio for this request.
func (rc *ReportController) GenerateVoice(c *gin.Context) {
	var req models.VoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	session := sessionID(c, req.SessionID)
	tok, err := rc.Requests.Begin(session, services.PanelVoice)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	buf, err := rc.Voice.GenerateVoiceReport(c.Request.Context(), req.Text, req.Gender)
	if !rc.Requests.Complete(tok) {
		log.Printf("Discarding stale voice report in session %s", session)
		c.JSON(http.StatusConflict, gin.H{"error": "Request superseded by a view change"})
		return
	}
	if err != nil {
		log.Printf("Voice decode error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if buf == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var wav bytes.Buffer
	if err := buf.WriteWAV(&wav); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode audio"})
		return
	}
	c.Data(http.StatusOK, audio.WAVContentType, wav.Bytes())
}
