package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"quizfy_backend/internal/config"
	"quizfy_backend/internal/controller"
	"quizfy_backend/internal/jobs"
	"quizfy_backend/internal/repository"
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"
	"quizfy_backend/pkg/configwatcher"
	"quizfy_backend/pkg/database"
	"quizfy_backend/pkg/logger"
	"quizfy_backend/pkg/monitoring"
	"quizfy_backend/pkg/security"
	"quizfy_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	rateLimiter     *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	scheduler       *cron.Cron
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	quiz       *repository.QuizRepository
	question   *repository.QuestionRepository
	submission *repository.SubmissionRepository
	permission *repository.PermissionRepository
	folder     *repository.FolderRepository
}

type services struct {
	storage   *service.StorageService
	mail      *service.MailService
	ai        *service.AIService
	auth      *service.AuthService
	qrcode    *service.QRCodeService
	quiz      *service.QuizService
	question  *service.QuestionService
	folder    *service.FolderService
	attempt   *service.AttemptService
	grading   *service.GradingService
	analytics *service.AnalyticsService
	export    *service.ExportService
	dashboard *service.DashboardService
	helpBot   *service.HelpBotService
}

type controllers struct {
	health    *controller.HealthController
	auth      *controller.AuthController
	quiz      *controller.QuizController
	question  *controller.QuestionController
	folder    *controller.FolderController
	attempt   *controller.AttemptController
	grade     *controller.GradeController
	analytics *controller.AnalyticsController
	export    *controller.ExportController
	dashboard *controller.DashboardController
	helpBot   *controller.HelpBotController
}

// RegisterConfigCallback adds a hook that runs after the config file is
// reloaded.
func (a *App) RegisterConfigCallback(cb func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, cb)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		quiz:       repository.NewQuizRepository(db),
		question:   repository.NewQuestionRepository(db),
		submission: repository.NewSubmissionRepository(db),
		permission: repository.NewPermissionRepository(db),
		folder:     repository.NewFolderRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.mail = service.NewMailService(cfg.Mail)
	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, s.mail, cfg)
	s.qrcode = service.NewQRCodeService(cfg.Server.SiteURL)

	s.quiz = service.NewQuizService(
		repos.quiz,
		repos.question,
		repos.submission,
		repos.folder,
		repos.user,
		s.storage,
		s.qrcode,
	)
	s.question = service.NewQuestionService(repos.quiz, repos.question, s.storage)
	s.folder = service.NewFolderService(repos.folder, repos.quiz, s.quiz, s.storage)

	s.attempt = service.NewAttemptService(
		db,
		repos.quiz,
		repos.question,
		repos.submission,
		repos.permission,
		repos.user,
		s.storage,
		cfg,
	)
	s.grading = service.NewGradingService(
		db,
		repos.quiz,
		repos.submission,
		repos.permission,
		s.storage,
		s.attempt.MaxUpload,
	)

	s.analytics = service.NewAnalyticsService(s.folder, repos.quiz, repos.question, repos.submission, s.ai)
	s.export = service.NewExportService(repos.quiz, repos.question, repos.submission, repos.folder, repos.user)
	s.dashboard = service.NewDashboardService(repos.user, repos.submission, s.quiz)

	helpBot, err := service.NewHelpBotService(rdb)
	if err != nil {
		logger.Log.Fatal("Failed to load help bot knowledge base", zap.Error(err))
	}
	s.helpBot = helpBot

	a.RegisterConfigCallback(func(cfg *config.Config) {
		s.ai.UpdateConfig(cfg.AI)
		s.mail.Configure(cfg.Mail)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		health:    controller.NewHealthController(db, rdb),
		auth:      controller.NewAuthController(s.auth),
		quiz:      controller.NewQuizController(s.quiz, s.qrcode),
		question:  controller.NewQuestionController(s.question),
		folder:    controller.NewFolderController(s.folder),
		attempt:   controller.NewAttemptController(s.attempt),
		grade:     controller.NewGradeController(s.grading),
		analytics: controller.NewAnalyticsController(s.analytics),
		export:    controller.NewExportController(s.export),
		dashboard: controller.NewDashboardController(s.dashboard),
		helpBot:   controller.NewHelpBotController(s.helpBot),
	}
}

func rateWindow(cfg *config.Config) time.Duration {
	return time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.AllowedHosts(cfg.Server.AllowedHosts))
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.rateLimiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, rateWindow(cfg))
	router.Use(a.rateLimiter.Middleware())
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.rateLimiter.Update(cfg.RateLimit.MaxRequests, rateWindow(cfg))
	})

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	if !cfg.Jobs.ExpirySweep {
		return
	}
	scheduler, err := jobs.Start(jobs.NewExpiryJob(s.attempt), cfg.Jobs.ExpirySweepSchedule)
	if err != nil {
		logger.Log.Error("Failed to start expiry sweeper", zap.Error(err))
		return
	}
	a.scheduler = scheduler
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, help bot replies will not be cached", zap.Error(err))
	} else if rdb != nil {
		logger.Log.Info("Redis connection established")
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}
	if cfg.MigrateOnly {
		return app
	}

	if err := util.RegisterValidators(); err != nil {
		logger.Log.Fatal("Failed to register validators", zap.Error(err))
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services, cfg)

	return app
}

func (a *App) watchConfig(ctx context.Context) {
	if a.Config.ConfigFile == "" {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, func(cfg *config.Config) {
			a.applyConfig(cfg)
			logger.Log.Info("Configuration reloaded", zap.String("file", a.Config.ConfigFile))
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatching := context.WithCancel(context.Background())
	defer stopWatching()
	a.watchConfig(watchCtx)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	stopWatching()
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
	}
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	logger.Log.Info("Server exiting")
	logger.Close()
}
