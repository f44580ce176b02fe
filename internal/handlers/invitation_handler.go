package handlers

import (
	"net/http"

	"github.com/VendleServices/vendle-backend/internal/middleware"
	"github.com/VendleServices/vendle-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	*BaseHandler
	invitationService *services.InvitationService
}

func NewInvitationHandler(base *BaseHandler, invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		BaseHandler:       base,
		invitationService: invitationService,
	}
}

func (h *InvitationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invitations := rg.Group("/invitations")
	invitations.Use(middleware.AuthMiddleware())
	invitations.Use(middleware.RequireRoles("contractor"))
	{
		invitations.GET("", h.ListOwn)
		invitations.POST("/:id/accept", h.Accept)
		invitations.POST("/:id/decline", h.Decline)
	}
}

func (h *InvitationHandler) ListOwn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.invitationService.ListForContractor(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.invitationService.Accept(h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvitationHandler) Decline(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.invitationService.Decline(h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
