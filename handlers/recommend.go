package handlers

import (
	"net/http"
	"strconv"

	"lexconnect/middleware"
	"lexconnect/models"
	"lexconnect/services/geo"
	"lexconnect/services/recommend"
	"lexconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecommendHandler exposes the recommendation engine over HTTP.
type RecommendHandler struct {
	Service recommend.Service
	Logger  *zap.Logger
}

// NewRecommendHandler builds the handler.
func NewRecommendHandler(service recommend.Service, logger *zap.Logger) *RecommendHandler {
	return &RecommendHandler{Service: service, Logger: logger}
}

// Initialize (re)primes the provider pool. Safe to call repeatedly.
func (h *RecommendHandler) Initialize(c *gin.Context) {
	if err := h.Service.Initialize(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to initialize recommendation engine", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Recommendation engine initialized"})
}

// GetRecommendations ranks providers for the posted preferences. When the
// client's coordinates were resolved by the geolocation middleware and the
// preferences carry no explicit location, the resolved one is used.
func (h *RecommendHandler) GetRecommendations(c *gin.Context) {
	var prefs models.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid preferences payload", err.Error())
		return
	}
	if prefs.Location == nil {
		if loc, ok := c.Get(middleware.ClientLocationKey); ok {
			coord := loc.(models.Coordinate)
			prefs.Location = &coord
		}
	}

	result, err := h.Service.GetRecommendations(c.Request.Context(), prefs)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute recommendations", err.Error())
		return
	}

	response := gin.H{"recommendations": result.Recommendations}
	if result.Broadened {
		response["broadened"] = true
		response["notice"] = "No providers matched your district; showing results from nearby areas within 60 km."
	}
	c.JSON(http.StatusOK, response)
}

// GetSimilarProviders returns up to five providers similar to the given one.
func (h *RecommendHandler) GetSimilarProviders(c *gin.Context) {
	providerID := c.Param("id")
	similar, err := h.Service.GetSimilarProviders(c.Request.Context(), providerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to find similar providers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"similar_providers": similar})
}

// GetProvider returns a provider by ID, serving the first pool record as a
// fallback when the ID is unknown so stale links still render.
func (h *RecommendHandler) GetProvider(c *gin.Context) {
	providerID := c.Param("id")
	provider, found := h.Service.ProviderOrFallback(c.Request.Context(), providerID)
	if !found && provider.ID == "" {
		c.JSON(http.StatusOK, gin.H{"provider": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": provider, "fallback": !found})
}

// UpdateReward adds to a provider's session reward.
func (h *RecommendHandler) UpdateReward(c *gin.Context) {
	var input struct {
		ProviderID string  `json:"providerId" binding:"required"`
		Reward     float64 `json:"reward"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reward payload", err.Error())
		return
	}
	if err := h.Service.UpdateReward(c.Request.Context(), input.ProviderID, input.Reward); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update reward", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// TrackInteraction records a telemetry event. Fire-and-forget from the
// client's perspective; unrecognized types are stored but not rewarded.
func (h *RecommendHandler) TrackInteraction(c *gin.Context) {
	var input struct {
		UserID string            `json:"userId" binding:"required"`
		Type   string            `json:"type" binding:"required"`
		Data   map[string]string `json:"data"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid interaction payload", err.Error())
		return
	}
	if err := h.Service.TrackInteraction(c.Request.Context(), input.UserID, input.Type, input.Data); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to track interaction", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// RecordBooking appends a booking to the provider's history.
func (h *RecommendHandler) RecordBooking(c *gin.Context) {
	var input struct {
		ProviderID string                `json:"providerId" binding:"required"`
		UserID     string                `json:"userId"`
		Details    models.BookingDetails `json:"details"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload", err.Error())
		return
	}
	booking, err := h.Service.RecordBooking(c.Request.Context(), input.ProviderID, input.UserID, input.Details)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to record booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "booking": booking})
}

// GetProviderAvailability lists a provider's open slots for the days ahead.
func (h *RecommendHandler) GetProviderAvailability(c *gin.Context) {
	providerID := c.Param("id")
	daysAhead := 7
	if days := c.Query("days"); days != "" {
		if parsed, err := strconv.Atoi(days); err == nil && parsed > 0 {
			daysAhead = parsed
		}
	}
	slots, err := h.Service.GetProviderAvailability(c.Request.Context(), providerID, daysAhead)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": slots})
}

// GetDistricts lists the district table.
func (h *RecommendHandler) GetDistricts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"districts": geo.Districts()})
}

// GetNearbyDistricts lists districts whose centers lie within 60 km of the
// named one.
func (h *RecommendHandler) GetNearbyDistricts(c *gin.Context) {
	district := c.Param("name")
	c.JSON(http.StatusOK, gin.H{
		"district": district,
		"nearby":   geo.GetNearbyDistricts(district, geo.DefaultMaxDistanceKm),
	})
}

// ResolveLocation reports the geolocation middleware's verdict for this
// request: a status plus the resolved district when there is one.
func (h *RecommendHandler) ResolveLocation(c *gin.Context) {
	status := middleware.GeoStatusError
	if s, ok := c.Get(middleware.GeoStatusKey); ok {
		status = s.(string)
	}
	response := gin.H{"status": status}
	if district, ok := c.Get(middleware.ClientDistrictKey); ok {
		response["district"] = district
	}
	if loc, ok := c.Get(middleware.ClientLocationKey); ok {
		response["location"] = loc
	}
	c.JSON(http.StatusOK, response)
}
