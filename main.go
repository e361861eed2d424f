package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"complaint-service/config"
	"complaint-service/internal/auth"
	"complaint-service/internal/handler"
	"complaint-service/internal/messaging"
	"complaint-service/internal/repository"
	"complaint-service/internal/service"
)

func main() {
	// .env is optional; the config file carries the defaults.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using config defaults")
	}

	cfg, err := config.LoadConfig("config/config.json")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Connect to RabbitMQ
	rmq, err := messaging.NewRabbitMQ(
		cfg.RabbitMQ.Host,
		cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User,
		cfg.RabbitMQ.Password,
	)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()
	log.Println("Connected to RabbitMQ")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	agencyRepo := repository.NewAgencyRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	// Start outbox worker and delivery consumer
	outboxWorker := messaging.NewOutboxWorker(outboxRepo, rmq)
	outboxWorker.Start()
	defer outboxWorker.Stop()

	consumer := messaging.NewDeliveryConsumer(rmq, notificationRepo)
	consumer.Start()
	defer consumer.Stop()

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	notificationService := service.NewNotificationService(notificationRepo, outboxRepo)
	complaintService := service.NewComplaintService(complaintRepo, categoryRepo, agencyRepo, responseRepo, notificationService)
	attachmentService := service.NewAttachmentService(attachmentRepo, complaintRepo, responseRepo, agencyRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, complaintRepo)
	agencyService := service.NewAgencyService(agencyRepo, userRepo, complaintRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	agencyHandler := handler.NewAgencyHandler(agencyService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Setup Gin
	r := gin.Default()

	// Health check
	r.GET("/health", handler.Health)

	// Public endpoints
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	api := r.Group("/", auth.Middleware(cfg.JWT.Secret))
	{
		api.GET("/me", authHandler.Me)
		api.PATCH("/users/:id/status", authHandler.SetUserStatus)

		api.GET("/categories", complaintHandler.GetCategories)
		api.POST("/categories", complaintHandler.CreateCategory)

		api.POST("/complaints", complaintHandler.Create)
		api.GET("/complaints", complaintHandler.List)
		api.GET("/complaints/:id", complaintHandler.Get)
		api.PUT("/complaints/:id", complaintHandler.Update)
		api.PATCH("/complaints/:id/status", complaintHandler.Transition)
		api.PATCH("/complaints/:id/assign", complaintHandler.Assign)
		api.POST("/complaints/:id/responses", complaintHandler.AddResponse)
		api.GET("/complaints/:id/responses", complaintHandler.ListResponses)
		api.POST("/complaints/:id/feedback", feedbackHandler.Submit)
		api.GET("/complaints/:id/feedback", feedbackHandler.ListByComplaint)

		api.POST("/attachments", attachmentHandler.Attach)
		api.GET("/attachments", attachmentHandler.ListByRelated)

		api.POST("/agencies", agencyHandler.Provision)
		api.GET("/agencies", agencyHandler.List)
		api.GET("/agencies/:id", agencyHandler.Get)
		api.GET("/agencies/:id/complaints", agencyHandler.ListComplaints)

		api.GET("/notifications", notificationHandler.GetNotifications)
		api.PATCH("/notifications/:id/read", notificationHandler.MarkAsRead)
		api.PATCH("/notifications/read-all", notificationHandler.MarkAllAsRead)
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Complaint service starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
