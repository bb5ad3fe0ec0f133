package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bananabill/internal/service"
)

// FarmerHandler handles farmer directory endpoints.
type FarmerHandler struct {
	farmerService service.FarmerService
}

// NewFarmerHandler creates a new FarmerHandler.
func NewFarmerHandler(farmerService service.FarmerService) *FarmerHandler {
	return &FarmerHandler{farmerService: farmerService}
}

// Create handles POST /api/v1/farmers
func (h *FarmerHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input service.FarmerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	farmer, err := h.farmerService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, farmer)
}

// Get handles GET /api/v1/farmers/:id
func (h *FarmerHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	farmerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid farmer id")
		return
	}

	farmer, err := h.farmerService.Get(c.Request.Context(), userID, farmerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, farmer)
}

// List handles GET /api/v1/farmers
func (h *FarmerHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	farmers, total, err := h.farmerService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, farmers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Search handles GET /api/v1/farmers/search?q=...
func (h *FarmerHandler) Search(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	farmers, err := h.farmerService.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, farmers)
}

// Update handles PUT /api/v1/farmers/:id
func (h *FarmerHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	farmerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid farmer id")
		return
	}

	var input service.FarmerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	farmer, err := h.farmerService.Update(c.Request.Context(), userID, farmerID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, farmer)
}

// Delete handles DELETE /api/v1/farmers/:id
func (h *FarmerHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	farmerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid farmer id")
		return
	}

	if err := h.farmerService.Delete(c.Request.Context(), userID, farmerID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "farmer deleted"})
}
