package controllers

import (
	"bytes"
	"errors"
	"net/http"

	"edumaster/internal/audio"
	"edumaster/models"

	"github.com/gin-gonic/gin"
)

// AudioController decodes PCM payloads supplied by clients
type AudioController struct {
	SampleRate int
	Channels   int
}

// DecodeAudio turns a base64 PCM16 payload into a WAV file
func (ac *AudioController) DecodeAudio(c *gin.Context) {
	var req models.DecodeAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.SampleRate == 0 {
		req.SampleRate = ac.SampleRate
	}
	if req.Channels == 0 {
		req.Channels = ac.Channels
	}

	buf, err := audio.DecodeBase64PCM16(req.Data, req.SampleRate, req.Channels)
	if err != nil {
		kind := "format_error"
		if errors.Is(err, audio.ErrDecode) {
			kind = "decode_error"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": kind})
		return
	}

	var wav bytes.Buffer
	if err := buf.WriteWAV(&wav); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode audio"})
		return
	}
	c.Data(http.StatusOK, audio.WAVContentType, wav.Bytes())
}
