package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookhive/handlers"
	"bookhive/middleware"
	"bookhive/models"
)

// RegisterAvailabilityRoutes sets up slot materialization and the public
// availability reads.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		// Public reads for the booking flow.
		api.GET("/profiles/:profileID", hb.GetRangeAvailabilityHandler)
		api.GET("/profiles/:profileID/dates/:date", hb.GetDateAvailabilityHandler)

		// Owner-side slot management.
		owner := api.Group("")
		owner.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleOwner))
		owner.POST("/profiles/:profileID/slots", hb.CreateSlotsHandler)
		owner.POST("/profiles/:profileID/apply-template", hb.ApplyTemplateHandler)
		owner.POST("/profiles/:profileID/bulk-apply", hb.BulkApplyTemplateHandler)
		owner.POST("/profiles/:profileID/bulk-delete", hb.BulkDeleteSlotsHandler)
		owner.PUT("/slots/:slotID", hb.UpdateSlotCapacityHandler)
		owner.DELETE("/slots/:slotID", hb.DeleteSlotHandler)
	}
}

// RegisterTemplateRoutes sets up owner template management.
func RegisterTemplateRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/templates")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleOwner))
		api.POST("", hb.CreateTemplateHandler)
		api.GET("", hb.ListTemplatesHandler)
		api.GET("/default", hb.GetDefaultTemplateHandler)
		api.POST("/preview", hb.PreviewTemplateHandler)
		api.GET("/:templateID", hb.GetTemplateHandler)
		api.PATCH("/:templateID", hb.UpdateTemplateHandler)
		api.DELETE("/:templateID", hb.DeleteTemplateHandler)
	}
}

// RegisterBookingRoutes sets up the customer booking surface.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		// Reference lookup is public: the ref is the customer's receipt.
		api.GET("/ref/:ref", hb.GetBookingByRefHandler)

		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware())
		authed.POST("", hb.CreateBookingHandler)
		authed.GET("", hb.ListMyBookingsHandler)
		authed.GET("/:bookingID", hb.GetBookingHandler)
		authed.PUT("/:bookingID/cancel", hb.CancelBookingHandler)
		authed.PUT("/:bookingID/reschedule", hb.RescheduleBookingHandler)
	}
}

// RegisterAdminRoutes sets up the owner-side booking management surface.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleOwner))
		api.GET("/profiles/:profileID/bookings", hb.ListProfileBookingsHandler)
		api.PUT("/bookings/:bookingID/approve", hb.ApproveBookingHandler)
		api.PUT("/bookings/:bookingID/reject", hb.RejectBookingHandler)
		api.PUT("/bookings/:bookingID/cancel", hb.OwnerCancelBookingHandler)
		api.PUT("/bookings/:bookingID/complete", hb.CompleteBookingHandler)
		api.PUT("/bookings/:bookingID/no-show", hb.NoShowBookingHandler)
		api.PUT("/bookings/:bookingID/reschedule", hb.OwnerRescheduleBookingHandler)
		api.POST("/bookings/:bookingID/notes", hb.AddBookingNoteHandler)
		api.GET("/bookings/:bookingID/notes", hb.ListBookingNotesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm BookHive"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterTemplateRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
