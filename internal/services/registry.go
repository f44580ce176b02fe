package services

import (
	"time"

	"github.com/VendleServices/vendle-backend/internal/config"
	"github.com/VendleServices/vendle-backend/internal/email"
	"github.com/VendleServices/vendle-backend/internal/intake"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/storage"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         *AuthService
	UserService         *UserService
	IntakeService       *IntakeService
	ClaimService        *ClaimService
	AuctionService      *AuctionService
	BidService          *BidService
	InvitationService   *InvitationService
	ContractorService   *ContractorService
	NotificationService *NotificationService
	ChatService         *ChatService
}

// NewServiceContainer wires repositories, storage, email and realtime
// publishing into the service graph.
func NewServiceContainer(
	cfg *config.Config,
	store storage.Storage,
	emailProvider email.Provider,
	publisher Publisher,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	contractorRepo := repositories.NewContractorRepository()
	claimRepo := repositories.NewClaimRepository()
	auctionRepo := repositories.NewAuctionRepository()
	bidRepo := repositories.NewBidRepository()
	invitationRepo := repositories.NewInvitationRepository()
	projectRepo := repositories.NewProjectRepository()
	notificationRepo := repositories.NewNotificationRepository()
	chatRepo := repositories.NewChatRepository()

	notificationService := NewNotificationService(notificationRepo, publisher)

	claimService := NewClaimService(
		claimRepo,
		auctionRepo,
		invitationRepo,
		contractorRepo,
		store,
		time.Duration(cfg.Auction.DurationHours)*time.Hour,
	)

	sessions := intake.NewSessionStore(cfg.Upload.MaxPDFSize)
	pipeline := intake.NewPipeline(store, intake.Buckets{
		Images:    cfg.Buckets.Images,
		Estimates: cfg.Buckets.Estimates,
	})

	return &ServiceContainer{
		AuthService:   NewAuthService(userRepo, contractorRepo),
		UserService:   NewUserService(userRepo),
		IntakeService: NewIntakeService(sessions, pipeline, claimService),
		ClaimService:  claimService,
		AuctionService: NewAuctionService(
			auctionRepo,
			bidRepo,
			claimRepo,
		),
		BidService: NewBidService(
			bidRepo,
			auctionRepo,
			contractorRepo,
			invitationRepo,
			notificationService,
		),
		InvitationService: NewInvitationService(
			invitationRepo,
			claimRepo,
			contractorRepo,
			projectRepo,
			userRepo,
			notificationService,
			emailProvider,
		),
		ContractorService: NewContractorService(
			contractorRepo,
			invitationRepo,
			projectRepo,
			bidRepo,
			claimRepo,
		),
		NotificationService: notificationService,
		ChatService: NewChatService(
			chatRepo,
			userRepo,
			notificationService,
			publisher,
		),
	}
}
