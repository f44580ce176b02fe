package handlers

import (
	"net/http"

	"github.com/VendleServices/vendle-backend/internal/middleware"
	"github.com/VendleServices/vendle-backend/internal/services"
	"github.com/VendleServices/vendle-backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContractorHandler struct {
	*BaseHandler
	contractorService *services.ContractorService
}

func NewContractorHandler(base *BaseHandler, contractorService *services.ContractorService) *ContractorHandler {
	return &ContractorHandler{
		BaseHandler:       base,
		contractorService: contractorService,
	}
}

func (h *ContractorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contractors := rg.Group("/contractors")
	contractors.Use(middleware.AuthMiddleware())
	contractors.Use(middleware.RequireRoles("contractor"))
	{
		contractors.GET("/me", h.GetStatus)
		contractors.PATCH("/me", h.UpdateProfile)
		contractors.POST("/me/nda", h.SignNDA)
	}
}

func (h *ContractorHandler) GetStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.contractorService.GetStatus(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContractorHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContractorProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.contractorService.UpdateProfile(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func (h *ContractorHandler) SignNDA(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.contractorService.SignNDA(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
