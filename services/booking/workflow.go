// Package booking implements the consultation scheduling workflow: a
// forward-gated step machine (service, date/time, details, confirmed)
// whose sessions live in the session store between requests.
package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"lexconnect/database/session"
	"lexconnect/models"
	"lexconnect/services/recommend"
	"lexconnect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProviderServices are the consultation types offered in the first step.
var ProviderServices = []string{
	"Initial Consultation",
	"Legal Document Review",
	"Legal Representation",
	"Mediation Services",
	"Legal Advice",
}

// WorkflowService is the booking workflow contract.
type WorkflowService interface {
	Start(ctx context.Context, providerID, userID string) (models.BookingSession, error)
	Get(ctx context.Context, sessionID string) (models.BookingSession, error)
	SelectService(ctx context.Context, sessionID, service string) (models.BookingSession, error)
	SelectDate(ctx context.Context, sessionID, date string) (models.BookingSession, error)
	SelectTimeSlot(ctx context.Context, sessionID string, slot models.TimeSlot) (models.BookingSession, error)
	SetDetails(ctx context.Context, sessionID, notes, meetingType string) (models.BookingSession, error)
	Next(ctx context.Context, sessionID string) (models.BookingSession, error)
	Back(ctx context.Context, sessionID string) (models.BookingSession, error)
	Submit(ctx context.Context, sessionID string) (models.BookingSession, error)
	Close(ctx context.Context, sessionID string) error
}

// DefaultWorkflowService keeps sessions as JSON in the session store with a
// TTL, one blob per session.
type DefaultWorkflowService struct {
	Store       session.Store
	Recommender recommend.Service
	TTL         time.Duration

	rand *rand.Rand
	// SubmitHook, when set, decides whether a submission succeeds. Nil
	// means submissions always succeed.
	SubmitHook func() error
}

// NewDefaultWorkflowService builds the workflow service.
func NewDefaultWorkflowService(store session.Store, recommender recommend.Service, seed int64, ttl time.Duration) *DefaultWorkflowService {
	return &DefaultWorkflowService{
		Store:       store,
		Recommender: recommender,
		TTL:         ttl,
		rand:        rand.New(rand.NewSource(seed)),
	}
}

func sessionKey(sessionID string) string {
	return "bookingSession:" + sessionID
}

// Start opens a new workflow session at the service-selection step.
func (w *DefaultWorkflowService) Start(ctx context.Context, providerID, userID string) (models.BookingSession, error) {
	sess := models.BookingSession{
		SessionID:   uuid.New().String(),
		ProviderID:  providerID,
		UserID:      userID,
		Step:        models.StepSelectService,
		MeetingType: models.MeetingInPerson,
	}
	if err := w.save(ctx, sess); err != nil {
		return models.BookingSession{}, err
	}
	return sess, nil
}

// Get loads a session.
func (w *DefaultWorkflowService) Get(ctx context.Context, sessionID string) (models.BookingSession, error) {
	var sess models.BookingSession
	err := session.GetJSON(ctx, w.Store, sessionKey(sessionID), &sess)
	if errors.Is(err, session.ErrNotFound) {
		return models.BookingSession{}, ErrSessionNotFound
	}
	if err != nil {
		return models.BookingSession{}, fmt.Errorf("failed to load booking session: %w", err)
	}
	return sess, nil
}

func (w *DefaultWorkflowService) save(ctx context.Context, sess models.BookingSession) error {
	if err := session.SetJSON(ctx, w.Store, sessionKey(sess.SessionID), sess, w.TTL); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

// SelectService records the chosen consultation type.
func (w *DefaultWorkflowService) SelectService(ctx context.Context, sessionID, service string) (models.BookingSession, error) {
	sess, err := w.Get(ctx, sessionID)
	if err != nil {
		return models.BookingSession{}, err
	}
	sess.SelectedService = service
	return sess, w.save(ctx, sess)
}

// SelectDate sets the consultation date, clears any previously selected
// time slot and fetches the slot grid for that date. The fetched slots are
// committed through the stale-fetch guard so a late result for an old date
// can never overwrite a newer selection.
func (w *DefaultWorkflowService) SelectDate(ctx context.Context, sessionID, date string) (models.BookingSession, error) {
	sess, err := w.Get(ctx, sessionID)
	if err != nil {
		return models.BookingSession{}, err
	}
	sess.SelectedDate = date
	sess.SelectedTimeSlot = nil
	sess.Availability = nil
	if err := w.save(ctx, sess); err != nil {
		return models.BookingSession{}, err
	}

	slots := GenerateDaySlots(date, w.rand)

	// Re-load before committing: the session may have moved on while the
	// fetch was in flight.
	sess, err = w.Get(ctx, sessionID)
	if err != nil {
		return models.BookingSession{}, err
	}
	if !ApplyAvailability(&sess, date, slots) {
		utils.GetLogger().Debug("discarding stale availability fetch",
			zap.String("sessionID", sessionID), zap.String("date", date))
		return sess, nil
	}
	return sess, w.save(ctx, sess)
}

// ApplyAvailability commits fetched slots onto the session only when the
// fetch's date still matches the session's selected date. Returns false for
// a stale fetch, which the caller discards.
func ApplyAvailability(sess *models.BookingSession, fetchedDate string, slots []models.TimeSlot) bool {
	if sess.SelectedDate != fetchedDate {
		return false
	}
	sess.Availability = slots
	return true
}

// SelectTimeSlot records the chosen slot. The slot must be open in the
// session's current availability.
func (w *DefaultWorkflowService) SelectTimeSlot(ctx context.Context, sessionID string, slot models.TimeSlot) (models.BookingSession, error) {
	sess, err := w.Get(ctx, sessionID)
	if err != nil {
		return models.BookingSession{}, err
	}
	found := false
	for _, s := range sess.Availability {
		if s.Date == slot.Date && s.Time == slot.Time {
			found = s.Available
			break
		}
	}
	if !found {
		return sess, ErrSlotUnavailable
	}
	chosen := slot
	chosen.Available = true
	sess.SelectedTimeSlot = &chosen
	return sess, w.save(ctx, sess)
}

// SetDetails records the notes and meeting type gathered in the details step.
func (w *DefaultWorkflowService) SetDetails(ctx context.Context, sessionID, notes, meetingType string) (models.BookingSession, error) {
	sess, err := w.Get(ctx, sessionID)
	if err != nil {
		return models.BookingSession{}, err
	}
	sess.Notes = notes
	if meetingType != "" {
		sess.MeetingType = meetingType
	}
	return sess, w.save(ctx, sess)
}

// CanAdvance evaluates the readiness predicate of the session's current step.
func CanAdvance(sess models.BookingSession) bool {
	switch sess.Step {
	case models.StepSelectService:
		return sess.SelectedService != ""
	case models.StepSelectTime:
		return sess.SelectedDate != "" && sess.SelectedTimeSlot != nil
	case models.StepDetails:
		// Notes are optional; the real gate is a successful submit.
		return true
	default:
		return false
	}
}

// Next moves the session forward one step. The details step advances only
// through Submit, and Confirmed is terminal.
func (w *DefaultWorkflowService) Next(ctx context.Context, sessionID string) (models.BookingSession, error) {
	sess, err := w.Get(ctx, sessionID)
	if err != nil {
		return models.BookingSession{}, err
	}
	if sess.Step == models.StepConfirmed {
		return sess, ErrAlreadyConfirmed
	}
	if sess.Step == models.StepDetails {
		return w.submit(ctx, sess)
	}
	if !CanAdvance(sess) {
		return sess, ErrStepNotReady
	}
	sess.Step++
	return sess, w.save(ctx, sess)
}

// Back moves to the previous step. Only defined from the date/time and
// details steps.
func (w *DefaultWorkflowService) Back(ctx context.Context, sessionID string) (models.BookingSession, error) {
	sess, err := w.Get(ctx, sessionID)
	if err != nil {
		return models.BookingSession{}, err
	}
	if sess.Step != models.StepSelectTime && sess.Step != models.StepDetails {
		return sess, ErrNoBackward
	}
	sess.Step--
	return sess, w.save(ctx, sess)
}

// Submit attempts the booking from the details step.
func (w *DefaultWorkflowService) Submit(ctx context.Context, sessionID string) (models.BookingSession, error) {
	sess, err := w.Get(ctx, sessionID)
	if err != nil {
		return models.BookingSession{}, err
	}
	if sess.Step == models.StepConfirmed {
		return sess, ErrAlreadyConfirmed
	}
	return w.submit(ctx, sess)
}

func (w *DefaultWorkflowService) submit(ctx context.Context, sess models.BookingSession) (models.BookingSession, error) {
	if sess.SelectedDate == "" || sess.SelectedTimeSlot == nil || sess.SelectedService == "" {
		return sess, ErrMissingBookingInfo
	}
	if w.SubmitHook != nil {
		if err := w.SubmitHook(); err != nil {
			// Failure keeps the session in the details step.
			utils.GetLogger().Warn("booking submission failed",
				zap.String("sessionID", sess.SessionID), zap.Error(err))
			return sess, ErrSubmitFailed
		}
	}

	sess.BookingID = fmt.Sprintf("BOOK-%04d", w.rand.Intn(10000))
	details := models.BookingDetails{
		BookingID:   sess.BookingID,
		ProviderID:  sess.ProviderID,
		UserID:      sess.UserID,
		Date:        sess.SelectedTimeSlot.Date,
		Time:        sess.SelectedTimeSlot.Time,
		Service:     sess.SelectedService,
		Status:      "pending",
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Notes:       sess.Notes,
		MeetingType: sess.MeetingType,
	}
	if w.Recommender != nil {
		if _, err := w.Recommender.RecordBooking(ctx, sess.ProviderID, sess.UserID, details); err != nil {
			utils.GetLogger().Warn("failed to record booking in engine", zap.Error(err))
		}
	}

	sess.Step = models.StepConfirmed
	return sess, w.save(ctx, sess)
}

// Close discards the session. After confirmation the stored copy is kept
// briefly so the confirmation screen can still render, then expires.
func (w *DefaultWorkflowService) Close(ctx context.Context, sessionID string) error {
	sess, err := w.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if sess.Step == models.StepConfirmed {
		return session.SetJSON(ctx, w.Store, sessionKey(sessionID), sess, 5*time.Second)
	}
	return w.Store.Delete(ctx, sessionKey(sessionID))
}
