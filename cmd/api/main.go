// @title Study Deck API
// @version 1.0
// @description Turns notes and PDFs into summaries, flashcards and quizzes.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "study-deck/cmd/api/docs"
	"study-deck/internal/adapter"
	"study-deck/internal/adapter/extractor"
	"study-deck/internal/adapter/generator"
	"study-deck/internal/cache"
	"study-deck/internal/config"
	"study-deck/internal/database"
	"study-deck/internal/domain"
	"study-deck/internal/handler"
	"study-deck/internal/logger"
	"study-deck/internal/middleware"
	"study-deck/internal/repository"
	"study-deck/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Deck store: Oracle when configured, otherwise in-process.
	var decks domain.DeckStore
	if cfg.DB.Host != "" {
		db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		decks = repository.NewSQLXDeckRepository(db)
		appLogger.Info("Oracle deck repository initialized", zap.String("host", cfg.DB.Host))
	} else {
		decks = repository.NewMemoryDeckStore()
		appLogger.Warn("No database configured, decks are kept in memory")
	}

	// Workspace store: Redis when configured, otherwise in-process.
	var workspaceCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		workspaceCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}
	workspaces := service.NewWorkspaceStore(workspaceCache, cfg.Pipeline.WorkspaceTTL)

	gen, err := generator.New(ctx, cfg.Generator)
	if err != nil {
		appLogger.Fatal("Failed to create study material generator", zap.Error(err))
	}
	appLogger.Info("Generator initialized",
		zap.String("provider", cfg.Generator.Provider),
		zap.String("model", cfg.Generator.Model))

	pipeline := service.NewGenerationPipeline(
		extractor.NewPDFExtractor(cfg.Extractor.MaxPages),
		gen,
		decks,
		workspaces,
		service.PipelineConfig{
			SavedIndicatorWindow: cfg.Pipeline.SavedIndicatorWindow,
			AutoSaveTimeout:      cfg.Pipeline.AutoSaveTimeout,
		},
	)

	authService, err := service.NewAuthService(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,Authorization," + middleware.SessionIDHeader,
		ExposeHeaders: middleware.SessionIDHeader,
		MaxAge:        300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app.Group("/api"), handler.Handlers{
		Workspace: handler.NewWorkspaceHandler(pipeline, int64(cfg.Server.BodyLimit)),
		Decks:     handler.NewDeckHandler(pipeline),
		Study:     handler.NewStudyHandler(pipeline),
		Auth:      handler.NewAuthHandler(authService, cfg),
	}, authService)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	pipeline.Wait()
	appLogger.Info("Server exited gracefully")
}
