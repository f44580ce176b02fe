package handlers

import (
	"net/http"

	"github.com/VendleServices/vendle-backend/internal/middleware"
	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/internal/services"
	"github.com/VendleServices/vendle-backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuctionHandler struct {
	*BaseHandler
	auctionService *services.AuctionService
	bidService     *services.BidService
}

func NewAuctionHandler(base *BaseHandler, auctionService *services.AuctionService, bidService *services.BidService) *AuctionHandler {
	return &AuctionHandler{
		BaseHandler:    base,
		auctionService: auctionService,
		bidService:     bidService,
	}
}

func (h *AuctionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auctions := rg.Group("/auctions")
	auctions.Use(middleware.AuthMiddleware())
	{
		auctions.GET("", middleware.RequireRoles("homeowner", "admin"), h.ListOwn)
		auctions.GET("/:id", middleware.RequireRoles("homeowner", "admin"), h.GetSummary)
		auctions.POST("/:id/close", middleware.RequireRoles("homeowner"), h.Close)

		auctions.POST("/:id/bids", middleware.RequireRoles("contractor"), h.PlaceBid)
	}
}

func (h *AuctionHandler) ListOwn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status := models.AuctionStatus(c.Query("status"))
	resp, err := h.auctionService.ListOwn(h.GetDB(c), userID, status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuctionHandler) GetSummary(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.auctionService.GetSummary(
		h.GetDB(c),
		c.Param("id"),
		userID,
		models.UserRole(h.UserRole(c)),
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuctionHandler) Close(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.auctionService.Close(h.GetDB(c), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Auction closed"})
}

func (h *AuctionHandler) PlaceBid(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PlaceBidRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.bidService.PlaceBid(h.GetDB(c), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
