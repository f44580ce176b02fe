package handlers

import (
	"net/http"

	"github.com/VendleServices/vendle-backend/internal/middleware"
	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/internal/services"
	"github.com/VendleServices/vendle-backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ClaimHandler struct {
	*BaseHandler
	claimService      *services.ClaimService
	invitationService *services.InvitationService
	contractorService *services.ContractorService
}

func NewClaimHandler(
	base *BaseHandler,
	claimService *services.ClaimService,
	invitationService *services.InvitationService,
	contractorService *services.ContractorService,
) *ClaimHandler {
	return &ClaimHandler{
		BaseHandler:       base,
		claimService:      claimService,
		invitationService: invitationService,
		contractorService: contractorService,
	}
}

func (h *ClaimHandler) RegisterRoutes(rg *gin.RouterGroup) {
	claims := rg.Group("/claims")
	claims.Use(middleware.AuthMiddleware())
	{
		claims.GET("", h.ListOwn)
		claims.GET("/:id", h.Get)
		claims.DELETE("/:id", h.Delete)

		claims.POST("/:id/launch", middleware.RequireRoles("homeowner"), h.LaunchAuction)
		claims.POST("/:id/invitations", middleware.RequireRoles("homeowner"), h.Invite)
		claims.GET("/:id/invitations", middleware.RequireRoles("homeowner"), h.ListInvitations)
		claims.GET("/:id/contractors/analysis", middleware.RequireRoles("homeowner"), h.AnalyzeContractors)
	}
}

func (h *ClaimHandler) ListOwn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.claimService.ListOwnClaims(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClaimHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.claimService.GetClaim(
		c.Request.Context(),
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

func (h *ClaimHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.claimService.DeleteClaim(c.Request.Context(), h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClaimHandler) LaunchAuction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.LaunchAuctionRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.claimService.LaunchAuction(h.GetDB(c), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClaimHandler) Invite(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.InviteContractorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.invitationService.Invite(h.GetDB(c), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClaimHandler) ListInvitations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.invitationService.ListForClaim(h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClaimHandler) AnalyzeContractors(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 10)

	resp, err := h.contractorService.Analyze(h.GetDB(c), c.Param("id"), userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
