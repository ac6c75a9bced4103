package booking

import (
	"fmt"
	"math/rand"

	"lexconnect/models"
)

// Consultation hours for date-scoped availability: 30-minute slots with
// start times from 09:00 through 17:30.
const (
	dayFirstHour = 9
	dayLastHour  = 17
)

// slotAvailableChance is the probability any single slot is open.
const slotAvailableChance = 0.7

// GenerateDaySlots produces the 30-minute slot grid for one date, each slot
// independently marked available with 70% probability.
func GenerateDaySlots(date string, r *rand.Rand) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, (dayLastHour-dayFirstHour+1)*2)
	for hour := dayFirstHour; hour <= dayLastHour; hour++ {
		for _, minutes := range []int{0, 30} {
			slots = append(slots, models.TimeSlot{
				Date:      date,
				Time:      fmt.Sprintf("%02d:%02d", hour, minutes),
				Available: r.Float64() < slotAvailableChance,
			})
		}
	}
	return slots
}
