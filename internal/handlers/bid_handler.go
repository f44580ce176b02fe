package handlers

import (
	"net/http"

	"github.com/VendleServices/vendle-backend/internal/middleware"
	"github.com/VendleServices/vendle-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type BidHandler struct {
	*BaseHandler
	bidService *services.BidService
}

func NewBidHandler(base *BaseHandler, bidService *services.BidService) *BidHandler {
	return &BidHandler{
		BaseHandler: base,
		bidService:  bidService,
	}
}

func (h *BidHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bids := rg.Group("/bids")
	bids.Use(middleware.AuthMiddleware())
	bids.Use(middleware.RequireRoles("contractor"))
	{
		bids.GET("", h.ListOwn)
	}
}

func (h *BidHandler) ListOwn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.bidService.ListOwnBids(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
