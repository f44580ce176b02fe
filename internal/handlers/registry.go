package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	IntakeHandler       *IntakeHandler
	ClaimHandler        *ClaimHandler
	AuctionHandler      *AuctionHandler
	BidHandler          *BidHandler
	InvitationHandler   *InvitationHandler
	ContractorHandler   *ContractorHandler
	NotificationHandler *NotificationHandler
	ChatHandler         *ChatHandler
	FileHandler         *FileHandler
}
