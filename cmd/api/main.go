package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vis-hal-git/Ai-interviewer/internal/config"
	"github.com/vis-hal-git/Ai-interviewer/internal/handlers"
	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
	"github.com/vis-hal-git/Ai-interviewer/internal/middleware"
	"github.com/vis-hal-git/Ai-interviewer/internal/repositories"
	"github.com/vis-hal-git/Ai-interviewer/internal/services"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)
	logger.Info().Msg("✅ Config loaded successfully")

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal().Msg("❌ JWT_SECRET is required")
	}

	ctx := context.Background()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize database")
	}

	profileRepo := repositories.NewProfileRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	logger.Info().Msg("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to create upload directory")
	}

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize Gemini AI")
	}
	logger.Info().Str("model", cfg.Gemini.Model).Msg("✅ Gemini AI initialized successfully")

	var questionBank services.QuestionBank
	if cfg.Qdrant.URL != "" {
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			logger.Fatal().Err(err).Msg("❌ Failed to initialize Qdrant")
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			logger.Warn().Err(err).Msg("⚠️ Question bank unavailable, generating without reference questions")
		} else {
			questionBank = services.NewQuestionBank(geminiService, qdrantService, cfg.Qdrant.TopK)
			logger.Info().Msg("✅ Question bank initialized successfully")
		}
	}

	plainReader, err := services.NewPlainPDFReader(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ Plain PDF reader unavailable, using rich pass only")
		plainReader = nil
	}

	textExtractor := services.NewTextExtractor(
		services.NewPDFParserService(),
		services.NewLinkClassifier(),
		plainReader,
	)
	resumeParser := services.NewResumeParser(
		textExtractor,
		services.NewContactExtractor(),
		services.NewProfileExtractor(geminiService),
	)

	resumeService := services.NewResumeService(profileRepo, storageService, resumeParser)
	interviewService := services.NewInterviewService(
		interviewRepo,
		profileRepo,
		services.NewQuestionGenerator(geminiService, questionBank),
		services.NewFollowUpGenerator(geminiService),
		cfg.Interview.QuestionCount,
	)
	logger.Info().Msg("✅ Services initialized successfully")

	resumeHandler := handlers.NewResumeHandler(resumeService)
	interviewHandler := handlers.NewInterviewHandler(interviewService)
	logger.Info().Msg("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "AI Interviewer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")
	handlers.RegisterRoutes(
		api,
		middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		resumeHandler,
		interviewHandler,
	)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interviewer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resumes/upload",
				"GET /api/v1/resumes/user/all",
				"GET /api/v1/resumes/:id",
				"DELETE /api/v1/resumes/:id",
				"GET /api/v1/interviews/user/stats",
				"POST /api/v1/interviews/start",
				"GET /api/v1/interviews/:session_id",
				"PUT /api/v1/interviews/:session_id/status",
				"POST /api/v1/interviews/:session_id/submit-answer",
				"POST /api/v1/interviews/:session_id/follow-up",
				"POST /api/v1/interviews/:session_id/complete",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info().Msg("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to start server")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
