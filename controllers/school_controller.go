package controllers

import (
	"net/http"

	"edumaster/db"
	"edumaster/models"
	"edumaster/services"

	"github.com/gin-gonic/gin"
)

// SchoolController serves the shared reference collections and the roster
type SchoolController struct {
	Store *db.Store
}

func (sc *SchoolController) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, services.ComputeDashboardStats(sc.Store))
}

func (sc *SchoolController) GetClasses(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Store.Classes())
}

func (sc *SchoolController) GetClassStudents(c *gin.Context) {
	classID := c.Param("id")
	if _, ok := sc.Store.Class(classID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
		return
	}
	c.JSON(http.StatusOK, sc.Store.StudentsByClass(classID))
}

func (sc *SchoolController) GetSubjects(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Store.Subjects())
}

func (sc *SchoolController) GetTeachers(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Store.Teachers())
}

func (sc *SchoolController) GetStudents(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Store.Students())
}

func (sc *SchoolController) CreateStudent(c *gin.Context) {
	var student models.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	created, err := sc.Store.AddStudent(student)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ImportStudents adds every row of an uploaded xlsx roster to a class
func (sc *SchoolController) ImportStudents(c *gin.Context) {
	classID := c.PostForm("classId")
	if classID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "classId is required"})
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	imported, err := services.ImportStudentsFromExcel(sc.Store, file, classID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
