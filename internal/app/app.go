package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/opstrack/server/internal/module/brief"
	"github.com/opstrack/server/internal/module/collaboration"
	"github.com/opstrack/server/internal/module/dashboard"
	"github.com/opstrack/server/internal/module/decisionlog"
	"github.com/opstrack/server/internal/module/dod"
	"github.com/opstrack/server/internal/module/export"
	"github.com/opstrack/server/internal/module/notification"
	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/review"
	"github.com/opstrack/server/internal/module/sample"
	"github.com/opstrack/server/internal/module/search"
	"github.com/opstrack/server/internal/module/task"
	"github.com/opstrack/server/internal/module/template"
	"github.com/opstrack/server/internal/shared/config"
	"github.com/opstrack/server/internal/shared/database"
	"github.com/opstrack/server/internal/shared/logger"
	"github.com/opstrack/server/internal/utils/metrics"
	"github.com/opstrack/server/internal/utils/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App represents the application.
type App struct {
	config    *config.Config
	db        *gorm.DB
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	metrics   *metrics.Metrics

	// Module handlers
	projectHandler      *project.Handler
	taskHandler         *task.Handler
	briefHandler        *brief.Handler
	dodHandler          *dod.Handler
	reviewHandler       *review.Handler
	decisionHandler     *decisionlog.Handler
	sampleHandler       *sample.Handler
	dashboardHandler    *dashboard.Handler
	searchHandler       *search.Handler
	templateHandler     *template.Handler
	notificationHandler *notification.Handler
	exportHandler       *export.Handler
	collabHandler       *collaboration.Handler
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init zap logger: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    log,
		zapLogger: zapLog,
		metrics:   metrics.New(cfg.App.Name),
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	app.db = db

	if err := app.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	app.router = app.setupRouter()
	app.initModules()
	app.registerRoutes()

	return app, nil
}

// migrate creates or updates the database schema.
func (a *App) migrate() error {
	return a.db.AutoMigrate(
		&collaboration.User{},
		&project.Project{},
		&task.Task{},
		&brief.Brief{},
		&dod.DoD{},
		&review.Review{},
		&decisionlog.DecisionLog{},
		&sample.Sample{},
		&template.Template{},
		&template.Usage{},
		&template.BestPractice{},
		&notification.Notification{},
		&notification.Settings{},
		&collaboration.ProjectMember{},
		&collaboration.ProjectInvite{},
		&collaboration.ApprovalWorkflow{},
		&collaboration.ApprovalResponse{},
		&collaboration.TeamDecision{},
		&collaboration.DecisionVote{},
		&collaboration.DecisionComment{},
	)
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.App.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.CORS(a.corsConfig()))
	r.Use(middleware.Metrics(a.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// corsConfig builds the CORS policy. Development allows every origin;
// elsewhere the allowed origins come from configuration.
func (a *App) corsConfig() middleware.CORSConfig {
	cfg := middleware.DefaultCORSConfig()
	if !a.config.App.IsDevelopment() && len(a.config.CORS.AllowedOrigins) > 0 {
		cfg.AllowOrigins = a.config.CORS.AllowedOrigins
	}
	return cfg
}

// initModules wires every module's repository, service and handler.
func (a *App) initModules() {
	projectRepo := project.NewRepository(a.db)
	a.projectHandler = project.NewHandler(project.NewService(projectRepo, a.zapLogger))

	taskRepo := task.NewRepository(a.db)
	a.taskHandler = task.NewHandler(task.NewService(taskRepo, a.config.Workflow.WIPLimit, a.metrics, a.zapLogger))

	briefRepo := brief.NewRepository(a.db)
	a.briefHandler = brief.NewHandler(brief.NewService(briefRepo, a.zapLogger))

	dodRepo := dod.NewRepository(a.db)
	a.dodHandler = dod.NewHandler(dod.NewService(dodRepo, a.zapLogger))

	reviewRepo := review.NewRepository(a.db)
	a.reviewHandler = review.NewHandler(review.NewService(reviewRepo, a.zapLogger))

	decisionRepo := decisionlog.NewRepository(a.db)
	a.decisionHandler = decisionlog.NewHandler(decisionlog.NewService(decisionRepo, a.zapLogger))

	sampleRepo := sample.NewRepository(a.db)
	a.sampleHandler = sample.NewHandler(sample.NewService(sampleRepo, a.zapLogger))

	dashboardRepo := dashboard.NewRepository(a.db)
	a.dashboardHandler = dashboard.NewHandler(dashboard.NewService(dashboardRepo, a.zapLogger))

	searchRepo := search.NewRepository(a.db)
	a.searchHandler = search.NewHandler(search.NewService(searchRepo, a.zapLogger))

	templateRepo := template.NewRepository(a.db)
	a.templateHandler = template.NewHandler(template.NewService(templateRepo, a.zapLogger))

	notificationRepo := notification.NewRepository(a.db)
	a.notificationHandler = notification.NewHandler(notification.NewService(notificationRepo, a.metrics, a.zapLogger))

	exportRepo := export.NewRepository(a.db)
	a.exportHandler = export.NewHandler(export.NewService(exportRepo, a.zapLogger))

	collabRepo := collaboration.NewRepository(a.db)
	a.collabHandler = collaboration.NewHandler(collaboration.NewService(collabRepo, a.zapLogger))
}

// registerRoutes registers routes for all modules.
func (a *App) registerRoutes() {
	v1 := a.router.Group("/api/v1")

	a.projectHandler.RegisterRoutes(v1)
	a.taskHandler.RegisterRoutes(v1)
	a.briefHandler.RegisterRoutes(v1)
	a.dodHandler.RegisterRoutes(v1)
	a.reviewHandler.RegisterRoutes(v1)
	a.decisionHandler.RegisterRoutes(v1)
	a.sampleHandler.RegisterRoutes(v1)
	a.dashboardHandler.RegisterRoutes(v1)
	a.searchHandler.RegisterRoutes(v1)
	a.templateHandler.RegisterRoutes(v1)
	a.notificationHandler.RegisterRoutes(v1)
	a.exportHandler.RegisterRoutes(v1)
	a.collabHandler.RegisterRoutes(v1)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop stops the application and releases resources.
func (a *App) Stop() {
	if a.zapLogger != nil {
		_ = a.zapLogger.Sync()
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
}
