package routes

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/drivingschool/internal/app/controllers"
	"github.com/yigit/drivingschool/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	rosterController *controllers.RosterController,
	enrollmentController *controllers.EnrollmentController,
	healthController *controllers.HealthController,
	sessionMiddleware gin.HandlerFunc,
	metricsHandler http.Handler,
	static fs.FS,
) {
	// --- Operational routes, no session ---
	router.GET("/healthz", healthController.Health)
	router.GET("/metrics", gin.WrapH(metricsHandler))
	router.StaticFS("/static", http.FS(static))

	// --- Screens ---
	screens := router.Group("")
	screens.Use(sessionMiddleware)
	{
		screens.GET("/", rosterController.Home)

		students := screens.Group("/students")
		{
			students.GET("", rosterController.List)
			students.GET("/manage", rosterController.Manage)
			students.POST("/manage/edit/:id", rosterController.Edit)
			students.POST("/manage/dialog", rosterController.SaveDialog)
			students.POST("/manage/dialog/cancel", rosterController.CancelDialog)
		}

		screens.GET("/enrollment", enrollmentController.Show)
		screens.POST("/enrollment", enrollmentController.Submit)
	}

	router.NoRoute(middleware.NotFound)
}
