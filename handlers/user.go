package handlers

import (
	"errors"
	"net/http"

	"lexconnect/models"
	"lexconnect/services/recommend"
	"lexconnect/services/user"
	"lexconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes the mock account surface: signup/login, profile,
// saved providers and locale preference.
type UserHandler struct {
	Service     user.Service
	Recommender recommend.Service
	Logger      *zap.Logger
}

// NewUserHandler builds the handler.
func NewUserHandler(service user.Service, recommender recommend.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{Service: service, Recommender: recommender, Logger: logger}
}

// Register creates an account and signs the user in.
func (h *UserHandler) Register(c *gin.Context) {
	var reg models.UserRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}
	account, err := h.Service.Register(c.Request.Context(), reg)
	if errors.Is(err, user.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": account})
}

// Login verifies credentials and returns the session profile with token.
func (h *UserHandler) Login(c *gin.Context) {
	var creds models.UserCredentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}
	account, err := h.Service.Login(c.Request.Context(), creds)
	if errors.Is(err, user.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to log in", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": account})
}

// Logout clears the session profile.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to log out", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetProfile returns the session profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	account, err := h.Service.CurrentUser(c.Request.Context())
	if errors.Is(err, user.ErrNotAuthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": account})
}

// SaveProvider adds a provider to the saved list. Unknown IDs fall back to
// the first pool record rather than failing. Saving rewards the provider.
func (h *UserHandler) SaveProvider(c *gin.Context) {
	providerID := c.Param("id")
	provider, _ := h.Recommender.ProviderOrFallback(c.Request.Context(), providerID)
	if provider.ID == "" {
		c.JSON(http.StatusOK, gin.H{"status": "success", "saved": []models.Provider{}})
		return
	}
	if err := h.Service.SaveProvider(c.Request.Context(), provider); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save provider", err.Error())
		return
	}
	account, _ := h.Service.CurrentUser(c.Request.Context())
	if account.ID != "" {
		if err := h.Recommender.TrackInteraction(c.Request.Context(), account.ID,
			models.InteractionSaveProvider, map[string]string{"providerId": provider.ID}); err != nil {
			h.Logger.Warn("failed to track save interaction", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "provider": provider})
}

// UnsaveProvider removes a provider from the saved list.
func (h *UserHandler) UnsaveProvider(c *gin.Context) {
	if err := h.Service.UnsaveProvider(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to unsave provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetSavedProviders lists the saved providers.
func (h *UserHandler) GetSavedProviders(c *gin.Context) {
	saved, err := h.Service.SavedProviders(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load saved providers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"savedProviders": saved})
}

// SetLanguage stores the locale preference.
func (h *UserHandler) SetLanguage(c *gin.Context) {
	var input struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid language payload", err.Error())
		return
	}
	if err := h.Service.SetLanguage(c.Request.Context(), input.Language); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to set language", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "language": input.Language})
}

// GetLanguage returns the stored locale preference.
func (h *UserHandler) GetLanguage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"language": h.Service.Language(c.Request.Context())})
}
