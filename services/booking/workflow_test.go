package booking_test

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"lexconnect/database/session"
	"lexconnect/models"
	"lexconnect/services/booking"
	"lexconnect/services/recommend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkflow(t *testing.T) *booking.DefaultWorkflowService {
	t.Helper()
	store := session.NewMemoryStore()
	rec := recommend.NewDefaultService(store, 8, 42, 30*time.Minute)
	require.NoError(t, rec.Initialize(context.Background()))
	return booking.NewDefaultWorkflowService(store, rec, 42, 30*time.Minute)
}

// pickOpenSlot walks a session to the date/time step with an open slot chosen.
func pickOpenSlot(t *testing.T, sess models.BookingSession) models.TimeSlot {
	t.Helper()
	for _, slot := range sess.Availability {
		if slot.Available {
			return slot
		}
	}
	t.Fatal("no open slot in availability grid")
	return models.TimeSlot{}
}

func TestStartOpensAtServiceStep(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)

	sess, err := w.Start(ctx, "provider_erode_0", "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, models.StepSelectService, sess.Step)
	assert.Equal(t, models.MeetingInPerson, sess.MeetingType)

	loaded, err := w.Get(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, sess.SessionID, loaded.SessionID)
}

func TestGetUnknownSession(t *testing.T) {
	w := newWorkflow(t)
	_, err := w.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, booking.ErrSessionNotFound)
}

func TestNextRequiresServiceSelection(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	sess, err := w.Start(ctx, "provider_erode_0", "")
	require.NoError(t, err)

	_, err = w.Next(ctx, sess.SessionID)
	assert.ErrorIs(t, err, booking.ErrStepNotReady)

	_, err = w.SelectService(ctx, sess.SessionID, booking.ProviderServices[0])
	require.NoError(t, err)

	sess, err = w.Next(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectTime, sess.Step)
}

func TestNextRequiresDateAndSlot(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	sess, err := w.Start(ctx, "provider_erode_0", "")
	require.NoError(t, err)
	_, err = w.SelectService(ctx, sess.SessionID, booking.ProviderServices[0])
	require.NoError(t, err)
	_, err = w.Next(ctx, sess.SessionID)
	require.NoError(t, err)

	// Date alone is not enough.
	sess, err = w.SelectDate(ctx, sess.SessionID, "2026-09-07")
	require.NoError(t, err)
	_, err = w.Next(ctx, sess.SessionID)
	assert.ErrorIs(t, err, booking.ErrStepNotReady)

	slot := pickOpenSlot(t, sess)
	_, err = w.SelectTimeSlot(ctx, sess.SessionID, slot)
	require.NoError(t, err)

	sess, err = w.Next(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepDetails, sess.Step)
}

func TestSelectDateClearsPreviousSlot(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	sess, err := w.Start(ctx, "provider_erode_0", "")
	require.NoError(t, err)

	sess, err = w.SelectDate(ctx, sess.SessionID, "2026-09-07")
	require.NoError(t, err)
	slot := pickOpenSlot(t, sess)
	_, err = w.SelectTimeSlot(ctx, sess.SessionID, slot)
	require.NoError(t, err)

	sess, err = w.SelectDate(ctx, sess.SessionID, "2026-09-08")
	require.NoError(t, err)
	assert.Nil(t, sess.SelectedTimeSlot)
	assert.Equal(t, "2026-09-08", sess.SelectedDate)
	for _, s := range sess.Availability {
		assert.Equal(t, "2026-09-08", s.Date)
	}
}

func TestSelectTimeSlotRejectsClosedSlot(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	sess, err := w.Start(ctx, "provider_erode_0", "")
	require.NoError(t, err)
	sess, err = w.SelectDate(ctx, sess.SessionID, "2026-09-07")
	require.NoError(t, err)

	_, err = w.SelectTimeSlot(ctx, sess.SessionID,
		models.TimeSlot{Date: "2026-09-07", Time: "23:00"})
	assert.ErrorIs(t, err, booking.ErrSlotUnavailable)
}

func TestApplyAvailabilityStaleGuard(t *testing.T) {
	sess := models.BookingSession{SelectedDate: "2026-09-08"}
	stale := []models.TimeSlot{{Date: "2026-09-07", Time: "09:00", Available: true}}

	assert.False(t, booking.ApplyAvailability(&sess, "2026-09-07", stale))
	assert.Nil(t, sess.Availability)

	fresh := []models.TimeSlot{{Date: "2026-09-08", Time: "09:00", Available: true}}
	assert.True(t, booking.ApplyAvailability(&sess, "2026-09-08", fresh))
	assert.Equal(t, fresh, sess.Availability)
}

func advanceToDetails(t *testing.T, w *booking.DefaultWorkflowService) models.BookingSession {
	t.Helper()
	ctx := context.Background()
	sess, err := w.Start(ctx, "provider_erode_0", "user-1")
	require.NoError(t, err)
	_, err = w.SelectService(ctx, sess.SessionID, booking.ProviderServices[0])
	require.NoError(t, err)
	_, err = w.Next(ctx, sess.SessionID)
	require.NoError(t, err)
	sess, err = w.SelectDate(ctx, sess.SessionID, "2026-09-07")
	require.NoError(t, err)
	_, err = w.SelectTimeSlot(ctx, sess.SessionID, pickOpenSlot(t, sess))
	require.NoError(t, err)
	sess, err = w.Next(ctx, sess.SessionID)
	require.NoError(t, err)
	require.Equal(t, models.StepDetails, sess.Step)
	return sess
}

func TestSubmitConfirmsBooking(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	sess := advanceToDetails(t, w)

	_, err := w.SetDetails(ctx, sess.SessionID, "property dispute", models.MeetingVideo)
	require.NoError(t, err)

	sess, err = w.Next(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmed, sess.Step)
	assert.True(t, strings.HasPrefix(sess.BookingID, "BOOK-"))
	assert.Len(t, sess.BookingID, len("BOOK-0000"))
}

func TestSubmitFailureKeepsDetailsStep(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	w.SubmitHook = func() error { return errors.New("upstream rejected") }
	sess := advanceToDetails(t, w)

	_, err := w.Next(ctx, sess.SessionID)
	assert.ErrorIs(t, err, booking.ErrSubmitFailed)

	sess, err = w.Get(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepDetails, sess.Step)
	assert.Empty(t, sess.BookingID)

	// Retry after the upstream recovers.
	w.SubmitHook = nil
	sess, err = w.Submit(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmed, sess.Step)
}

func TestSubmitWithoutSlotFails(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	sess, err := w.Start(ctx, "provider_erode_0", "")
	require.NoError(t, err)

	_, err = w.Submit(ctx, sess.SessionID)
	assert.ErrorIs(t, err, booking.ErrMissingBookingInfo)
}

func TestConfirmedSessionIsTerminal(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	sess := advanceToDetails(t, w)
	sess, err := w.Submit(ctx, sess.SessionID)
	require.NoError(t, err)
	require.Equal(t, models.StepConfirmed, sess.Step)

	_, err = w.Next(ctx, sess.SessionID)
	assert.ErrorIs(t, err, booking.ErrAlreadyConfirmed)
	_, err = w.Submit(ctx, sess.SessionID)
	assert.ErrorIs(t, err, booking.ErrAlreadyConfirmed)
}

func TestBackOnlyFromMiddleSteps(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	sess, err := w.Start(ctx, "provider_erode_0", "")
	require.NoError(t, err)

	_, err = w.Back(ctx, sess.SessionID)
	assert.ErrorIs(t, err, booking.ErrNoBackward)

	_, err = w.SelectService(ctx, sess.SessionID, booking.ProviderServices[1])
	require.NoError(t, err)
	_, err = w.Next(ctx, sess.SessionID)
	require.NoError(t, err)

	sess, err = w.Back(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectService, sess.Step)
}

func TestCloseDeletesUnconfirmedSession(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	sess, err := w.Start(ctx, "provider_erode_0", "")
	require.NoError(t, err)

	require.NoError(t, w.Close(ctx, sess.SessionID))
	_, err = w.Get(ctx, sess.SessionID)
	assert.ErrorIs(t, err, booking.ErrSessionNotFound)

	// Closing an unknown session is a no-op.
	assert.NoError(t, w.Close(ctx, "nope"))
}

func TestGenerateDaySlotsGrid(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	slots := booking.GenerateDaySlots("2026-09-07", r)

	// 09:00 through 17:30 in 30-minute steps.
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "17:30", slots[len(slots)-1].Time)
	for _, s := range slots {
		assert.Equal(t, "2026-09-07", s.Date)
	}
}
