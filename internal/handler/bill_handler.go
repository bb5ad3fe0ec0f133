package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bananabill/internal/domain"
	"bananabill/internal/service"
)

// BillHandler handles bill lifecycle, payment, and image endpoints.
type BillHandler struct {
	billService    service.BillService
	paymentService service.PaymentService
	imageService   service.ImageService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(
	billService service.BillService,
	paymentService service.PaymentService,
	imageService service.ImageService,
) *BillHandler {
	return &BillHandler{
		billService:    billService,
		paymentService: paymentService,
		imageService:   imageService,
	}
}

// Create handles POST /api/v1/bills
func (h *BillHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input service.CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, bill)
}

// Get handles GET /api/v1/bills/:id
func (h *BillHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bill id")
		return
	}

	bill, err := h.billService.Get(c.Request.Context(), userID, billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// GetByNumber handles GET /api/v1/bills/number/:number
func (h *BillHandler) GetByNumber(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	bill, err := h.billService.GetByNumber(c.Request.Context(), userID, c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// List handles GET /api/v1/bills with optional filters.
func (h *BillHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filters, err := parseBillFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bills, total, err := h.billService.List(c.Request.Context(), userID, filters, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/bills/:id
func (h *BillHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bill id")
		return
	}

	var input service.UpdateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.billService.Update(c.Request.Context(), userID, billID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// Delete handles DELETE /api/v1/bills/:id
func (h *BillHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bill id")
		return
	}

	if err := h.billService.Delete(c.Request.Context(), userID, billID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "bill deleted"})
}

// RecordPayment handles POST /api/v1/bills/:id/payments
func (h *BillHandler) RecordPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bill id")
		return
	}

	var input service.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.paymentService.RecordPayment(c.Request.Context(), userID, billID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// MarkAsPaid handles POST /api/v1/bills/:id/mark-paid
func (h *BillHandler) MarkAsPaid(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bill id")
		return
	}

	var input struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&input)

	bill, err := h.paymentService.MarkAsPaid(c.Request.Context(), userID, billID, input.Notes)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// UpdatePaymentStatus handles PATCH /api/v1/bills/:id/payment-status
func (h *BillHandler) UpdatePaymentStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bill id")
		return
	}

	var input service.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.paymentService.UpdatePaymentStatus(c.Request.Context(), userID, billID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// PaymentHistory handles GET /api/v1/bills/:id/payments
func (h *BillHandler) PaymentHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bill id")
		return
	}

	history, err := h.paymentService.History(c.Request.Context(), userID, billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, history)
}

// UploadImage handles POST /api/v1/bills/:id/image
func (h *BillHandler) UploadImage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bill id")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "image form field is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "could not read uploaded image")
		return
	}
	defer file.Close()

	bill, err := h.imageService.Upload(c.Request.Context(), service.ImageUploadInput{
		OwnerID: userID,
		BillID:  billID,
		File:    file,
		Header:  fileHeader,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// ImageURL handles GET /api/v1/bills/:id/image
func (h *BillHandler) ImageURL(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bill id")
		return
	}

	url, err := h.imageService.GetViewURL(c.Request.Context(), userID, billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// parseBillFilters reads the optional filter query parameters.
func parseBillFilters(c *gin.Context) (domain.BillFilters, error) {
	var filters domain.BillFilters

	if v := c.Query("farmer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filters, err
		}
		filters.FarmerID = &id
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filters, err
		}
		filters.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filters, err
		}
		end := t.AddDate(0, 0, 1)
		filters.EndDate = &end
	}
	if v := c.Query("payment_status"); v != "" {
		status := domain.PaymentStatus(v)
		if !domain.ValidPaymentStatuses[status] {
			return filters, domain.ErrInvalidBillInput
		}
		filters.PaymentStatus = status
	}
	return filters, nil
}
