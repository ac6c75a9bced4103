package models

// TimeSlot is a single bookable window on a given date.
type TimeSlot struct {
	Date      string `json:"date"` // "2006-01-02"
	Time      string `json:"time"` // "15:04"
	Available bool   `json:"available"`
}

// ProviderAvailability groups the open slots for one provider.
type ProviderAvailability struct {
	ProviderID string     `json:"providerId"`
	Slots      []TimeSlot `json:"slots"`
}

// Meeting types offered for a consultation.
const (
	MeetingInPerson = "in-person"
	MeetingVideo    = "video"
	MeetingPhone    = "phone"
)

// BookingDetails is the confirmed consultation record.
type BookingDetails struct {
	BookingID   string `json:"bookingId,omitempty"`
	ProviderID  string `json:"providerId"`
	UserID      string `json:"userId,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Service     string `json:"service"`
	Status      string `json:"status"` // pending, confirmed, completed, cancelled
	CreatedAt   string `json:"createdAt"`
	Notes       string `json:"notes,omitempty"`
	MeetingType string `json:"meetingType"`
}

// Booking workflow steps. Forward transitions are gated per step;
// Confirmed is terminal.
const (
	StepSelectService = 0
	StepSelectTime    = 1
	StepDetails       = 2
	StepConfirmed     = 3
)

// BookingSession holds the state of one scheduling workflow between the
// dialog opening and the booking being confirmed or abandoned.
type BookingSession struct {
	SessionID        string     `json:"sessionId"`
	ProviderID       string     `json:"providerId"`
	UserID           string     `json:"userId,omitempty"`
	Step             int        `json:"step"`
	SelectedService  string     `json:"selectedService,omitempty"`
	SelectedDate     string     `json:"selectedDate,omitempty"`
	SelectedTimeSlot *TimeSlot  `json:"selectedTimeSlot,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	MeetingType      string     `json:"meetingType"`
	Availability     []TimeSlot `json:"availability,omitempty"`
	BookingID        string     `json:"bookingId,omitempty"`
}
