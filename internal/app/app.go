package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/markvl91/teammates/internal/config"
	"github.com/markvl91/teammates/internal/controller"
	"github.com/markvl91/teammates/internal/repository"
	"github.com/markvl91/teammates/internal/service"
	"github.com/markvl91/teammates/pkg/configwatcher"
	"github.com/markvl91/teammates/pkg/database"
	"github.com/markvl91/teammates/pkg/logger"
	"github.com/markvl91/teammates/pkg/monitoring"
	"github.com/markvl91/teammates/pkg/security"
	"github.com/markvl91/teammates/pkg/tracing"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	results    *repository.ResultsRepository
	instructor *repository.InstructorRepository
}

type services struct {
	auth    *service.AuthService
	storage *service.StorageService
	results *service.ResultsService
	export  *service.ExportService
}

type controllers struct {
	auth    *controller.AuthController
	results *controller.ResultsController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		results:    repository.NewResultsRepository(db),
		instructor: repository.NewInstructorRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.instructor, cfg)
	s.results = service.NewResultsService(repos.results,
		cfg.Results.RespondentAutoloadLimit, cfg.Results.SectionQueryRange)
	s.export = service.NewExportService(repos.results, rdb, s.storage,
		cfg.Results.SectionQueryRange, cfg.Results.ExportCacheTTL)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		results: controller.NewResultsController(s.results, s.export),
		health:  controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig reloads the results thresholds when the config file
// changes, without a restart.
func (a *App) watchConfig() {
	watcher, err := configwatcher.New("configs", func(cfg *config.Config) {
		for _, callback := range a.configCallbacks {
			callback(cfg)
		}
	})
	if err != nil {
		logger.Log.Warn("config watcher disabled", zap.Error(err))
		return
	}
	go watcher.Run()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate || cfg.Server.Mode != "release")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("feedback-results", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.RegisterConfigCallback(func(next *config.Config) {
		services.results = service.NewResultsService(repos.results,
			next.Results.RespondentAutoloadLimit, next.Results.SectionQueryRange)
		controllers.results.ResultsService = services.results
		logger.Log.Info("results thresholds reloaded",
			zap.Int("autoloadLimit", next.Results.RespondentAutoloadLimit),
			zap.Int("sectionRange", next.Results.SectionQueryRange))
	})
	app.watchConfig()

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
