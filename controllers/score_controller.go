package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"edumaster/db"
	"edumaster/models"
	"edumaster/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ScoreController serves the gradebook
type ScoreController struct {
	Store *db.Store
}

// GetScores returns the gradebook rows of ?subjectId=, or every record when
// no subject is given.
func (sc *ScoreController) GetScores(c *gin.Context) {
	subjectID := c.Query("subjectId")
	if subjectID == "" {
		c.JSON(http.StatusOK, sc.Store.Scores())
		return
	}
	rows, err := services.Gradebook(sc.Store, subjectID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (sc *ScoreController) UpsertScore(c *gin.Context) {
	var rec models.ScoreRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	saved, err := sc.Store.UpsertScore(rec)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record":  saved,
		"average": models.AverageDisplay(&saved),
	})
}

func (sc *ScoreController) ExportGradebook(c *gin.Context) {
	subjectID := c.Param("subjectId")
	var buf bytes.Buffer
	if err := services.ExportGradebook(sc.Store, subjectID, &buf); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="gradebook-%s.xlsx"`, subjectID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
