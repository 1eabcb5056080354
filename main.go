package main

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"time"

	"kysely-service/internal/config"
	"kysely-service/internal/db"
	"kysely-service/internal/event"
	"kysely-service/internal/handlers"
	"kysely-service/internal/middleware"
	"kysely-service/internal/repository"
	"kysely-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Vite dev servers fall back through ports 5170-5179; CRA uses 3000.
var devOriginPattern = regexp.MustCompile(`^http://localhost:(517\d|3000)$`)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	mongoClient, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.DisconnectMongo(mongoClient)
	database := mongoClient.Database(cfg.MongoDatabase)

	redisClient, err := db.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// RabbitMQ event publisher, optional
	var publisher *event.Publisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		publisher, err = event.NewPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, domain events will not be published")
	}

	// Repositories
	categoryRepo := repository.NewCategoryRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	userRepo := repository.NewUserRepository(database)
	resultRepo := repository.NewResultRepository(database)
	sessionRepo := repository.NewSessionRepository(redisClient)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		log.Printf("Warning: could not ensure user indexes: %v", err)
	}
	indexCancel()

	// Services
	categoryService := service.NewCategoryService(categoryRepo, questionRepo, publisher)
	questionService := service.NewQuestionService(questionRepo, categoryRepo, publisher)
	quizService := service.NewQuizService(questionRepo)
	resultService := service.NewResultService(resultRepo, categoryRepo, publisher)
	userService := service.NewUserService(userRepo, publisher)
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.SessionSecret)

	// Handlers and middleware
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	questionHandler := handlers.NewQuestionHandler(questionService, quizService)
	quizHandler := handlers.NewQuizHandler(quizService)
	resultHandler := handlers.NewResultHandler(resultService)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return devOriginPattern.MatchString(origin) },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Kysely backend running!")
	})
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	api := r.Group("/api")
	{
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/me", authMiddleware.RequireSession(), authHandler.Me)

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/:id", categoryHandler.GetCategory)

			adminCategories := categories.Group("")
			adminCategories.Use(authMiddleware.RequireSession(), authMiddleware.RequireAdmin())
			{
				adminCategories.POST("", categoryHandler.CreateCategory)
				adminCategories.PUT("/:id", categoryHandler.UpdateCategory)
				adminCategories.DELETE("/:id", categoryHandler.DeleteCategory)
			}
		}

		// The unrestricted listing keeps correct answers, so every
		// questions route requires a session; writes require admin.
		questions := api.Group("/questions")
		questions.Use(authMiddleware.RequireSession())
		{
			questions.GET("", questionHandler.ListQuestions)
			questions.GET("/:categoryId", questionHandler.ListQuestionsByCategory)

			adminQuestions := questions.Group("")
			adminQuestions.Use(authMiddleware.RequireAdmin())
			{
				adminQuestions.POST("", questionHandler.CreateQuestion)
				adminQuestions.POST("/bulk", questionHandler.ImportQuestions)
				adminQuestions.PUT("/:id", questionHandler.UpdateQuestion)
				adminQuestions.DELETE("/:id", questionHandler.DeleteQuestion)
			}
		}

		api.POST("/quiz", quizHandler.StartQuiz)
		api.POST("/quiz/score", quizHandler.ScoreQuiz)

		results := api.Group("/results")
		{
			results.GET("", resultHandler.ListResults)
			results.POST("", resultHandler.CreateResult)

			adminResults := results.Group("")
			adminResults.Use(authMiddleware.RequireSession(), authMiddleware.RequireAdmin())
			{
				adminResults.PUT("/:id", resultHandler.UpdateResult)
				adminResults.DELETE("/:id", resultHandler.DeleteResult)
			}
		}

		users := api.Group("/users")
		users.Use(authMiddleware.RequireSession(), authMiddleware.RequireAdmin())
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	log.Printf("Kysely backend listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
