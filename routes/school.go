package routes

import (
	"edumaster/controllers"

	"github.com/gin-gonic/gin"
)

func SetupSchoolRoutes(router *gin.RouterGroup, ctrl *controllers.SchoolController) {
	router.GET("/dashboard", ctrl.GetDashboard)
	router.GET("/classes", ctrl.GetClasses)
	router.GET("/classes/:id/students", ctrl.GetClassStudents)
	router.GET("/subjects", ctrl.GetSubjects)
	router.GET("/teachers", ctrl.GetTeachers)
	router.GET("/students", ctrl.GetStudents)
	router.POST("/students", ctrl.CreateStudent)
	router.POST("/students/import", ctrl.ImportStudents)
}
