package handlers

import (
	"errors"
	"net/http"

	"lexconnect/middleware"
	"lexconnect/models"
	"lexconnect/services/booking"
	"lexconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling workflow over HTTP.
type BookingHandler struct {
	Workflow booking.WorkflowService
	Logger   *zap.Logger
}

// NewBookingHandler builds the handler.
func NewBookingHandler(workflow booking.WorkflowService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Workflow: workflow, Logger: logger}
}

// InitiateSession opens a new booking workflow for a provider.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	var input struct {
		ProviderID string `json:"providerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid session payload", err.Error())
		return
	}
	userID := ""
	if id, ok := c.Get(middleware.UserIDKey); ok {
		userID = id.(string)
	}
	sess, err := h.Workflow.Start(c.Request.Context(), input.ProviderID, userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sess.SessionID, "session": sess})
}

// GetSession returns the current workflow state.
func (h *BookingHandler) GetSession(c *gin.Context) {
	sess, err := h.Workflow.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondWorkflowError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// UpdateSession applies one workflow action to the session: selecting the
// service, date, or time slot, filling details, or moving forward or back.
func (h *BookingHandler) UpdateSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Action      string           `json:"action" binding:"required"`
		Service     string           `json:"service,omitempty"`
		Date        string           `json:"date,omitempty"`
		TimeSlot    *models.TimeSlot `json:"timeSlot,omitempty"`
		Notes       string           `json:"notes,omitempty"`
		MeetingType string           `json:"meetingType,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid update payload", err.Error())
		return
	}

	ctx := c.Request.Context()
	var (
		sess models.BookingSession
		err  error
	)
	switch input.Action {
	case "select_service":
		sess, err = h.Workflow.SelectService(ctx, sessionID, input.Service)
	case "select_date":
		sess, err = h.Workflow.SelectDate(ctx, sessionID, input.Date)
	case "select_slot":
		if input.TimeSlot == nil {
			utils.JSONError(c, http.StatusBadRequest, "Missing time slot", "select_slot requires a timeSlot")
			return
		}
		sess, err = h.Workflow.SelectTimeSlot(ctx, sessionID, *input.TimeSlot)
	case "set_details":
		sess, err = h.Workflow.SetDetails(ctx, sessionID, input.Notes, input.MeetingType)
	case "next":
		sess, err = h.Workflow.Next(ctx, sessionID)
	case "back":
		sess, err = h.Workflow.Back(ctx, sessionID)
	default:
		utils.JSONError(c, http.StatusBadRequest, "Unknown action", input.Action)
		return
	}
	if err != nil {
		h.respondWorkflowError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// ConfirmBooking submits the booking from the details step.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid confirm payload", err.Error())
		return
	}
	sess, err := h.Workflow.Submit(c.Request.Context(), input.SessionID)
	if err != nil {
		h.respondWorkflowError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "bookingId": sess.BookingID})
}

// CancelSession discards the workflow session.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Workflow.Close(c.Request.Context(), c.Param("sessionID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to close session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetAvailableServices lists the consultation types for step one.
func (h *BookingHandler) GetAvailableServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": booking.ProviderServices})
}

// respondWorkflowError maps workflow errors to HTTP responses. Workflow
// rule violations are notices with the unchanged session attached, never
// faults.
func (h *BookingHandler) respondWorkflowError(c *gin.Context, sess models.BookingSession, err error) {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrStepNotReady),
		errors.Is(err, booking.ErrNoBackward),
		errors.Is(err, booking.ErrAlreadyConfirmed),
		errors.Is(err, booking.ErrMissingBookingInfo),
		errors.Is(err, booking.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "session": sess})
	case errors.Is(err, booking.ErrSubmitFailed):
		c.JSON(http.StatusOK, gin.H{
			"error":   "Failed to create booking. Please try again.",
			"session": sess,
		})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Booking workflow error", err.Error())
	}
}
