package main

import (
	"alcyxob/training-tracker/internal/api"
	"alcyxob/training-tracker/internal/config"
	"alcyxob/training-tracker/internal/logging"
	"alcyxob/training-tracker/internal/metrics"
	"alcyxob/training-tracker/internal/repository"
	"alcyxob/training-tracker/internal/repository/memory"
	"alcyxob/training-tracker/internal/repository/mongo"
	"alcyxob/training-tracker/internal/service"
	"alcyxob/training-tracker/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

type repositories struct {
	users      repository.UserRepository
	exercises  repository.ExerciseRepository
	plans      repository.TrainingPlanRepository
	schedules  repository.TrainingScheduleRepository
	activities repository.ActivityRepository
}

// @title Training Tracker API
// @version 1.0
// @description API for exercise catalogs, training plans and athlete schedules.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	logFile := logging.Setup(cfg.Logging)
	defer logFile.Close()
	log.Println("starting training tracker server ...")

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsManager := metrics.NewManager(cfg.Metrics.Namespace, cfg.Metrics.Subsystem, reg)

	// --- Repositories ---
	var repos repositories
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warnln("using in-memory repositories, data is lost on shutdown")
		repos = repositories{
			users:      memory.NewUserRepository(),
			exercises:  memory.NewExerciseRepository(),
			plans:      memory.NewTrainingPlanRepository(),
			schedules:  memory.NewTrainingScheduleRepository(),
			activities: memory.NewActivityRepository(),
		}
	default:
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatalf("could not connect to mongodb: %s", err)
		}
		defer func() {
			log.Println("disconnecting mongodb ...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Errorf("failed to disconnect mongodb: %s", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)

		indexCtx, cancelIndex := context.WithTimeout(context.Background(), time.Minute)
		mongo.EnsureIndexes(indexCtx, appDB)
		cancelIndex()

		repos = repositories{
			users:      mongo.NewMongoUserRepository(appDB),
			exercises:  mongo.NewMongoExerciseRepository(appDB),
			plans:      mongo.NewMongoTrainingPlanRepository(appDB),
			schedules:  mongo.NewMongoTrainingScheduleRepository(appDB),
			activities: mongo.NewMongoActivityRepository(appDB),
		}
	}

	// --- Storage ---
	fileStorage := storage.NewDisabledStorage()
	if cfg.S3.Enabled {
		s3Ctx, cancelS3 := context.WithTimeout(context.Background(), 30*time.Second)
		fileStorage, err = storage.NewS3Storage(s3Ctx, cfg.S3)
		cancelS3()
		if err != nil {
			log.Fatalf("failed to initialize s3 storage: %s", err)
		}
	} else {
		log.Warnln("s3 storage disabled, schedule exports are unavailable")
	}

	// --- Services ---
	authService := service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration)
	catalogService := service.NewCatalogService(repos.exercises)
	planService := service.NewPlanService(repos.plans, repos.exercises)
	scheduleService := service.NewScheduleService(
		repos.schedules,
		repos.plans,
		repos.exercises,
		repos.activities,
		fileStorage,
		metricsManager,
		cfg.S3.PresignExpiry,
	)

	// --- Routes ---
	router := api.NewRouter(metricsManager)
	api.SetupRoutes(router, cfg.JWT.Secret, reg, authService, catalogService, planService, scheduleService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server ...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}
	log.Println("server exiting")
}
