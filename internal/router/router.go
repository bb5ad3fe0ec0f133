package router

import (
	"github.com/gin-gonic/gin"

	"bananabill/internal/handler"
	"bananabill/internal/middleware"
	"bananabill/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	otpH *handler.OTPHandler,
	farmerH *handler.FarmerHandler,
	billH *handler.BillHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)
	auth.POST("/logout", authH.Logout)

	otp := v1.Group("/otp")
	otp.POST("/send", otpH.Send)
	otp.POST("/verify", otpH.Verify)
	otp.POST("/reset-password", otpH.ResetPassword)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.POST("/auth/logout-all", authH.LogoutAll)

	// Farmer directory
	farmers := protected.Group("/farmers")
	farmers.POST("", farmerH.Create)
	farmers.GET("", farmerH.List)
	farmers.GET("/search", farmerH.Search)
	farmers.GET("/:id", farmerH.Get)
	farmers.PUT("/:id", farmerH.Update)
	farmers.DELETE("/:id", farmerH.Delete)

	// Bills, payments, images
	bills := protected.Group("/bills")
	bills.POST("", billH.Create)
	bills.GET("", billH.List)
	bills.GET("/number/:number", billH.GetByNumber)
	bills.GET("/:id", billH.Get)
	bills.PUT("/:id", billH.Update)
	bills.DELETE("/:id", billH.Delete)
	bills.POST("/:id/payments", billH.RecordPayment)
	bills.GET("/:id/payments", billH.PaymentHistory)
	bills.POST("/:id/mark-paid", billH.MarkAsPaid)
	bills.PATCH("/:id/payment-status", billH.UpdatePaymentStatus)
	bills.POST("/:id/image", billH.UploadImage)
	bills.GET("/:id/image", billH.ImageURL)

	// Reports and dashboard
	reports := protected.Group("/reports")
	reports.GET("/monthly", reportH.Monthly)
	reports.GET("/monthly/export", reportH.ExportMonthly)
	reports.GET("/months", reportH.AvailableMonths)
	reports.GET("/range", reportH.DateRange)
	reports.GET("/farmers/:id", reportH.FarmerReport)

	protected.GET("/dashboard", reportH.Dashboard)

	return r
}
