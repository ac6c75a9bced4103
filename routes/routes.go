package routes

import (
	"net/http"
	"time"

	"lexconnect/handlers"
	"lexconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRecommendationRoutes registers the recommendation engine endpoints.
func RegisterRecommendationRoutes(r *gin.Engine, rh *handlers.RecommendHandler) {
	api := r.Group("/api")
	{
		api.POST("/recommendations/initialize", rh.Initialize)
		api.POST("/recommendations", rh.GetRecommendations)
		api.GET("/providers/:id", rh.GetProvider)
		api.GET("/providers/:id/similar", rh.GetSimilarProviders)
		api.GET("/providers/:id/availability", rh.GetProviderAvailability)
		api.POST("/rewards", rh.UpdateReward)
		api.POST("/interactions", rh.TrackInteraction)
		api.POST("/bookings", rh.RecordBooking)
		api.GET("/districts", rh.GetDistricts)
		api.GET("/districts/:name/nearby", rh.GetNearbyDistricts)
		api.GET("/geo/resolve", rh.ResolveLocation)
	}
}

// RegisterBookingRoutes sets up the endpoints for the scheduling workflow.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthUserMiddleware(true))
		bookingGroup.GET("/services", bh.GetAvailableServices)
		bookingGroup.POST("/session", bh.InitiateSession)
		bookingGroup.GET("/session/:sessionID", bh.GetSession)
		bookingGroup.PUT("/session/:sessionID", bh.UpdateSession)
		bookingGroup.POST("/confirm", bh.ConfirmBooking)
		bookingGroup.DELETE("/session/:sessionID", bh.CancelSession)
	}
}

// RegisterUserRoutes registers account, saved-provider and locale endpoints.
func RegisterUserRoutes(r *gin.Engine, uh *handlers.UserHandler) {
	api := r.Group("/api/users")
	{
		api.POST("/register", uh.Register)
		api.POST("/login", uh.Login)
		api.GET("/language", uh.GetLanguage)
		api.PUT("/language", uh.SetLanguage)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(false))
		api.POST("/logout", uh.Logout)
		api.GET("/profile", uh.GetProfile)
		api.GET("/saved", uh.GetSavedProviders)
		api.PUT("/saved/:id", uh.SaveProvider)
		api.DELETE("/saved/:id", uh.UnsaveProvider)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm LexConnect"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, rh *handlers.RecommendHandler, bh *handlers.BookingHandler, uh *handlers.UserHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Client-Lat", "X-Client-Lng"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRecommendationRoutes(r, rh)
	RegisterBookingRoutes(r, bh)
	RegisterUserRoutes(r, uh)
	RegisterHealthRoute(r)
}
