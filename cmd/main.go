package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lingora/config"
	"github.com/lshigami/Lingora/database"
	_ "github.com/lshigami/Lingora/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lshigami/Lingora/internal/controller/admin"
	userctrl "github.com/lshigami/Lingora/internal/controller/user"
	"github.com/lshigami/Lingora/internal/logger"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/lshigami/Lingora/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Lingora Language Learning API
// @version 1.0
// @description Adaptive English learning platform: placement, daily lessons, sprints, spaced review, speaking practice, XP and achievements.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewLessonRepository,
			repository.NewPackRepository,
			repository.NewQuestionRepository,
			repository.NewProgressRepository,
			repository.NewMistakeRepository,
			repository.NewAchievementRepository,
			repository.NewConversationRepository,
			repository.NewVocabularyRepository,
			repository.NewStudyPlanRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewXPService,
			service.NewPerformanceService,
			service.NewAchievementService,
			service.NewPlacementService,
			service.NewSpeechService,
			service.NewUserService,
			service.NewAdminService,
			service.NewLessonService,
			service.NewReviewService,
			service.NewSpeakingService,
			service.NewProgressService,
			service.NewVocabularyService,
			service.NewPlannerService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewUserController,
			userctrl.NewLessonController,
			userctrl.NewAssessmentController,
			userctrl.NewReviewController,
			userctrl.NewProgressController,
			userctrl.NewSpeakingController,
			userctrl.NewVocabularyController,
			userctrl.NewPlannerController,
			adminctrl.NewAdminContentController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	userCtrl *userctrl.UserController,
	lessonCtrl *userctrl.LessonController,
	assessmentCtrl *userctrl.AssessmentController,
	reviewCtrl *userctrl.ReviewController,
	progressCtrl *userctrl.ProgressController,
	speakingCtrl *userctrl.SpeakingController,
	vocabularyCtrl *userctrl.VocabularyController,
	plannerCtrl *userctrl.PlannerController,
	adminCtrl *adminctrl.AdminContentController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/lessons", adminCtrl.CreateLesson)
		adminAPIGroup.POST("/packs", adminCtrl.CreatePack)
	}

	// User Routes (prefixed with /api/v1)
	api := router.Group("/api/v1")
	{
		api.POST("/users", userCtrl.Register)
		api.GET("/users/:user_id", userCtrl.GetUser)

		api.GET("/lessons/daily", lessonCtrl.GetDailyLesson)
		api.GET("/lessons/sprints/:sprint_type", lessonCtrl.GetSprint)
		api.GET("/lessons/:lesson_id", lessonCtrl.GetLesson)
		api.POST("/lessons/:lesson_id/submit", lessonCtrl.SubmitLesson)
		api.GET("/packs", lessonCtrl.GetPacks)
		api.GET("/packs/:pack_id/lessons", lessonCtrl.GetPackLessons)

		api.GET("/assessment/placement", assessmentCtrl.GetPlacementTest)
		api.POST("/assessment/placement/submit", assessmentCtrl.SubmitPlacement)
		api.GET("/assessment/transition/:target_level", assessmentCtrl.GetTransitionTest)
		api.POST("/assessment/transition/:target_level/submit", assessmentCtrl.SubmitTransition)

		api.GET("/review/generate", reviewCtrl.GenerateQuiz)
		api.POST("/review/submit", reviewCtrl.SubmitReview)
		api.GET("/review/stats", reviewCtrl.GetStats)

		api.GET("/progress/dashboard", progressCtrl.GetDashboard)
		api.GET("/progress/achievements", progressCtrl.GetAchievements)

		api.GET("/speaking/scenarios", speakingCtrl.ListScenarios)
		api.POST("/speaking/sessions", speakingCtrl.StartSession)
		api.POST("/speaking/sessions/:session_id/turns", speakingCtrl.SubmitTurn)
		api.POST("/speaking/sessions/:session_id/end", speakingCtrl.EndSession)

		api.GET("/vocabulary/advisor", vocabularyCtrl.GetAdvisor)
		api.GET("/vocabulary/practice", vocabularyCtrl.GetPractice)
		api.POST("/vocabulary", vocabularyCtrl.AddWord)
		api.POST("/vocabulary/:word/mastered", vocabularyCtrl.MarkMastered)
		api.DELETE("/vocabulary/:word", vocabularyCtrl.RemoveWord)

		api.GET("/planner", plannerCtrl.GetPlan)
		api.PUT("/planner", plannerCtrl.UpdatePlan)
		api.GET("/planner/reminder-status", plannerCtrl.GetReminderStatus)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Lingora API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.LessonPack{},
		&model.Lesson{},
		&model.Question{},
		&model.ProgressRecord{},
		&model.Mistake{},
		&model.Achievement{},
		&model.ConversationSession{},
		&model.VocabularyEntry{},
		&model.StudyPlan{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
