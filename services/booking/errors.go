package booking

import "errors"

var (
	// ErrSessionNotFound means the booking session expired or never existed.
	ErrSessionNotFound = errors.New("booking session not found or expired")
	// ErrStepNotReady means the current step's readiness predicate failed.
	ErrStepNotReady = errors.New("current step is missing required selections")
	// ErrNoBackward means "back" is not defined from the current step.
	ErrNoBackward = errors.New("cannot go back from this step")
	// ErrAlreadyConfirmed means the session reached its terminal step.
	ErrAlreadyConfirmed = errors.New("booking already confirmed")
	// ErrMissingBookingInfo means submit was attempted without date, time
	// slot and service all set.
	ErrMissingBookingInfo = errors.New("date, time slot and service are required")
	// ErrSubmitFailed is the simulated submission failure; the session
	// stays in the details step.
	ErrSubmitFailed = errors.New("booking submission failed")
	// ErrSlotUnavailable means the chosen slot is not open on that date.
	ErrSlotUnavailable = errors.New("selected time slot is not available")
)
