package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bananabill/internal/domain"
	"bananabill/internal/service"
)

// OTPHandler handles OTP delivery and verification endpoints.
type OTPHandler struct {
	otpService  service.OTPService
	authService service.AuthService
}

// NewOTPHandler creates a new OTPHandler.
func NewOTPHandler(otpService service.OTPService, authService service.AuthService) *OTPHandler {
	return &OTPHandler{otpService: otpService, authService: authService}
}

// Send handles POST /api/v1/otp/send
func (h *OTPHandler) Send(c *gin.Context) {
	var input service.SendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.otpService.Send(c.Request.Context(), input); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "otp sent"})
}

// Verify handles POST /api/v1/otp/verify. A verified login OTP returns a
// token pair; other actions return a plain confirmation.
func (h *OTPHandler) Verify(c *gin.Context) {
	var input service.VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.otpService.Verify(c.Request.Context(), input); err != nil {
		HandleError(c, err)
		return
	}

	if input.Action == domain.OTPActionLogin {
		result, err := h.authService.LoginWithOTP(c.Request.Context(), input.Mobile)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, result)
		return
	}

	RespondOK(c, gin.H{"message": "otp verified"})
}

// resetPasswordInput is the DTO for the OTP-gated password reset.
type resetPasswordInput struct {
	Mobile      string `json:"mobile" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword handles POST /api/v1/otp/reset-password. The OTP and the new
// password travel in one request so the code is consumed atomically.
func (h *OTPHandler) ResetPassword(c *gin.Context) {
	var input resetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	err := h.otpService.Verify(c.Request.Context(), service.VerifyOTPInput{
		Mobile: input.Mobile,
		Code:   input.Code,
		Action: domain.OTPActionResetPassword,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), input.Mobile, input.NewPassword); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "password has been reset"})
}
