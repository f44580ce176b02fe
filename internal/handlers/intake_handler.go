package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/VendleServices/vendle-backend/internal/intake"
	"github.com/VendleServices/vendle-backend/internal/middleware"
	"github.com/VendleServices/vendle-backend/internal/services"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type IntakeHandler struct {
	*BaseHandler
	intakeService *services.IntakeService
}

func NewIntakeHandler(base *BaseHandler, intakeService *services.IntakeService) *IntakeHandler {
	return &IntakeHandler{
		BaseHandler:   base,
		intakeService: intakeService,
	}
}

func (h *IntakeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	intakeGroup := rg.Group("/intake")
	intakeGroup.Use(middleware.AuthMiddleware())
	intakeGroup.Use(middleware.RequireRoles("homeowner"))
	{
		intakeGroup.POST("/start", h.Start)
		intakeGroup.GET("", h.Get)
		intakeGroup.DELETE("", h.Cancel)

		intakeGroup.PUT("/step", h.ApplyStep)
		intakeGroup.POST("/advance", h.Advance)
		intakeGroup.POST("/retreat", h.Retreat)

		intakeGroup.POST("/images", h.StageImage)
		intakeGroup.DELETE("/images/:index", h.UnstageImage)
		intakeGroup.POST("/estimate", h.StageEstimate)
		intakeGroup.DELETE("/estimate", h.UnstageEstimate)
	}
}

func (h *IntakeHandler) Start(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.intakeService.Start(userID))
}

func (h *IntakeHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.intakeService.Get(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IntakeHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	h.intakeService.Cancel(userID)
	c.Status(http.StatusNoContent)
}

func (h *IntakeHandler) ApplyStep(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var payload intake.StepPayload
	if !h.BindAndValidateJSON(c, &payload) {
		return
	}

	resp, err := h.intakeService.ApplyStep(userID, &payload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Advance moves to the next step. At the final step it submits the claim and
// returns 201 with the new claim's ID.
func (h *IntakeHandler) Advance(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	state, created, err := h.intakeService.Advance(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if created != nil {
		c.JSON(http.StatusCreated, created)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *IntakeHandler) Retreat(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.intakeService.Retreat(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IntakeHandler) StageImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, ok := h.readUpload(c)
	if !ok {
		return
	}

	resp, err := h.intakeService.StageImage(userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IntakeHandler) UnstageImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Image index must be an integer"))
		return
	}

	resp, err := h.intakeService.UnstageImage(userID, index)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IntakeHandler) StageEstimate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, ok := h.readUpload(c)
	if !ok {
		return
	}

	resp, err := h.intakeService.StagePDF(userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IntakeHandler) UnstageEstimate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.intakeService.UnstagePDF(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// readUpload pulls the "file" part of a multipart form fully into memory, the
// way the staging area expects it.
func (h *IntakeHandler) readUpload(c *gin.Context) (intake.StagedFile, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Request must include a 'file' form field"))
		return intake.StagedFile{}, false
	}

	data, err := readMultipartFile(header)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return intake.StagedFile{}, false
	}

	return intake.StagedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, true
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
