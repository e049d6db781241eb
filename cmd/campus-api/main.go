package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ameliakool/SCMS/api/swagger"
	"github.com/ameliakool/SCMS/internal/directory"
	"github.com/ameliakool/SCMS/internal/handler"
	"github.com/ameliakool/SCMS/internal/middleware"
	"github.com/ameliakool/SCMS/internal/service"
	"github.com/ameliakool/SCMS/internal/store"
	"github.com/ameliakool/SCMS/pkg/cache"
	"github.com/ameliakool/SCMS/pkg/config"
	"github.com/ameliakool/SCMS/pkg/database"
	"github.com/ameliakool/SCMS/pkg/events"
	"github.com/ameliakool/SCMS/pkg/logger"
	corsmiddleware "github.com/ameliakool/SCMS/pkg/middleware/cors"
	reqidmiddleware "github.com/ameliakool/SCMS/pkg/middleware/requestid"
)

// @title SCMS API
// @version 1.0.0
// @description Smart Campus Management System
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := newStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init snapshot store", "driver", cfg.Store.Driver, "error", err)
	}
	defer st.Close() //nolint:errcheck

	dir := directory.New(st, logr)

	metrics := service.NewMetricsService()
	dir.SetObserver(metrics)

	dir.Load(ctx)
	if cfg.Seed.Enabled {
		if dir.SeedIfEmpty(ctx) {
			logr.Sugar().Infow("seeded sample campus data")
		}
	}

	var publisher *events.Publisher
	if cfg.Events.Enabled {
		publisher, err = events.NewPublisher(cfg.Events, logr)
		if err != nil {
			logr.Sugar().Warnw("event publisher unavailable, continuing without events", "error", err)
		} else {
			defer publisher.Close()
		}
	}

	validate := validator.New()

	bookingSvc := service.NewBookingService(dir, validate, logr, publisher)
	classroomSvc := service.NewClassroomService(dir, validate, logr)
	studentSvc := service.NewStudentService(dir, validate, logr)
	resourceSvc := service.NewResourceService(dir, validate, logr)
	exportSvc := service.NewExportService(bookingSvc, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	registerRoutes(api, bookingSvc, classroomSvc, studentSvc, resourceSvc, exportSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown", "error", err)
	}

	dir.Flush(shutdownCtx)
}

func registerRoutes(
	api *gin.RouterGroup,
	bookingSvc *service.BookingService,
	classroomSvc *service.ClassroomService,
	studentSvc *service.StudentService,
	resourceSvc *service.ResourceService,
	exportSvc *service.ExportService,
) {
	classrooms := handler.NewClassroomHandler(classroomSvc)
	api.POST("/classrooms", classrooms.Create)
	api.GET("/classrooms", classrooms.List)
	api.GET("/classrooms/:room", classrooms.Get)

	bookings := handler.NewBookingHandler(bookingSvc)
	api.POST("/bookings", bookings.Create)
	api.GET("/bookings", bookings.List)
	api.PUT("/bookings/:id", bookings.Update)
	api.DELETE("/bookings/:id", bookings.Delete)
	api.GET("/classrooms/:room/bookings", bookings.ListByRoom)

	students := handler.NewStudentHandler(studentSvc)
	api.POST("/students", students.Create)
	api.GET("/students", students.List)
	api.GET("/students/:id", students.Get)
	api.PUT("/students/:id", students.Update)
	api.DELETE("/students/:id", students.Delete)

	resources := handler.NewResourceHandler(resourceSvc)
	api.POST("/resources", resources.Create)
	api.GET("/resources", resources.List)
	api.PUT("/resources/:id", resources.Update)
	api.DELETE("/resources/:id", resources.Delete)
	api.POST("/resources/:id/checkout", resources.Checkout)
	api.POST("/resources/:id/return", resources.Return)

	exports := handler.NewExportHandler(exportSvc)
	api.GET("/classrooms/:room/schedule", exports.RoomSchedule)
	api.GET("/schedule", exports.AllSchedules)
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(db)
	case config.StoreRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(client), nil
	case config.StoreFile:
		return store.NewFileStore(cfg.Store.Dir)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
