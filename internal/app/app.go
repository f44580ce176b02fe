package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/VendleServices/vendle-backend/database"
	"github.com/VendleServices/vendle-backend/internal/config"
	"github.com/VendleServices/vendle-backend/internal/email"
	"github.com/VendleServices/vendle-backend/internal/handlers"
	"github.com/VendleServices/vendle-backend/internal/logger"
	"github.com/VendleServices/vendle-backend/internal/middleware"
	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/routes"
	"github.com/VendleServices/vendle-backend/internal/services"
	"github.com/VendleServices/vendle-backend/internal/storage"
	"github.com/VendleServices/vendle-backend/internal/validator"
	"github.com/VendleServices/vendle-backend/internal/workers"
	"github.com/VendleServices/vendle-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	ginRouter, worker := SetupRouter(cfg, gormDB)

	if err := worker.Start(); err != nil {
		logger.Fatal("failed to start auction worker", "error", err)
	}
	defer worker.Stop()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter builds the full application graph and returns the router plus
// the background worker. Shared with integration tests.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *workers.AuctionWorker) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Buckets.Claims,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	logger.Info("storage initialized", "type", cfg.Storage.Type)

	emailProvider := newEmailProvider(cfg)

	wsManager := ws.NewManager()
	go wsManager.Run()

	serviceContainer := services.NewServiceContainer(cfg, storageInstance, emailProvider, wsManager)

	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	wsHandler := ws.NewHandler(wsManager, serviceContainer.ChatService, gormDB)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	worker := newWorkers(gormDB, serviceContainer)
	return ginRouter, worker
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, outbound email disabled")
		return &MockEmailProvider{}
	}
	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.FromEmail,
		UseTLS:   cfg.Email.UseTLS,
	}, email.NewTemplateManager())
}

func initializeHandlers(sc *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, sc.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, sc.UserService),
		IntakeHandler:       handlers.NewIntakeHandler(baseHandler, sc.IntakeService),
		ClaimHandler:        handlers.NewClaimHandler(baseHandler, sc.ClaimService, sc.InvitationService, sc.ContractorService),
		AuctionHandler:      handlers.NewAuctionHandler(baseHandler, sc.AuctionService, sc.BidService),
		BidHandler:          handlers.NewBidHandler(baseHandler, sc.BidService),
		InvitationHandler:   handlers.NewInvitationHandler(baseHandler, sc.InvitationService),
		ContractorHandler:   handlers.NewContractorHandler(baseHandler, sc.ContractorService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, sc.NotificationService),
		ChatHandler:         handlers.NewChatHandler(baseHandler, sc.ChatService),
		FileHandler:         handlers.NewFileHandler(baseHandler, storageInstance),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("first admin credentials not set, skipping admin seeding")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("admin user already exists", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("creating first admin user", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}

func newWorkers(db *gorm.DB, sc *services.ServiceContainer) *workers.AuctionWorker {
	return workers.NewAuctionWorker(
		db,
		repositories.NewAuctionRepository(),
		sc.NotificationService,
		time.Minute,
	)
}
