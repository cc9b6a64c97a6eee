package api

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/metrics"
	"alcyxob/training-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with the logging, recovery and metrics
// middlewares every route shares.
func NewRouter(metricsManager *metrics.Manager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), RequestMetrics(metricsManager))
	return router
}

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	gatherer prometheus.Gatherer,
	authService service.AuthService,
	catalogService service.CatalogService,
	planService service.PlanService,
	scheduleService service.ScheduleService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(catalogService)
	planHandler := NewPlanHandler(planService)
	scheduleHandler := NewScheduleHandler(scheduleService)

	authMiddleware := AuthMiddleware(jwtSecret)
	coachOnly := RoleMiddleware(domain.RoleCoach)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Exercise catalog: everyone reads, coaches write ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", coachOnly, exerciseHandler.CreateExercise)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.GET("/:id/similar", exerciseHandler.SimilarExercises)
		}

		// --- Training plans: everyone reads, authoring coaches write ---
		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", planHandler.ListPlans)
			planGroup.POST("", coachOnly, planHandler.CreatePlan)
			planGroup.GET("/:id", planHandler.GetPlan)
			planGroup.DELETE("/:id", coachOnly, planHandler.DeletePlan)
			planGroup.GET("/:id/equipment", planHandler.Equipment)
			planGroup.PUT("/:id/exercises/:name", coachOnly, planHandler.SetExercise)
			planGroup.DELETE("/:id/exercises/:name", coachOnly, planHandler.RemoveExercise)
		}

		// --- Schedules belong to the athlete who started them ---
		scheduleGroup := protected.Group("/schedules")
		scheduleGroup.Use(RoleMiddleware(domain.RoleAthlete))
		{
			scheduleGroup.POST("", scheduleHandler.CreateSchedule)
			scheduleGroup.GET("", scheduleHandler.ListSchedules)
			scheduleGroup.GET("/:id", scheduleHandler.GetSchedule)
			scheduleGroup.DELETE("/:id", scheduleHandler.DeleteSchedule)
			scheduleGroup.GET("/:id/summary", scheduleHandler.Summary)
			scheduleGroup.GET("/:id/targets", scheduleHandler.Targets)
			scheduleGroup.GET("/:id/analysis", scheduleHandler.Analysis)
			scheduleGroup.GET("/:id/week", scheduleHandler.TrainingWeek)
			scheduleGroup.GET("/:id/activities", scheduleHandler.ListActivities)
			scheduleGroup.POST("/:id/activities/:kind", scheduleHandler.RecordActivity)
			scheduleGroup.POST("/:id/export", scheduleHandler.Export)
		}
	}
}
