package model

import (
	"slices"
	"time"

	"pomade/shared/constant"
)

// ElapsedBuffer keeps same-day slots bookable only while they start at
// least this far in the future.
const ElapsedBuffer = 15 * time.Minute

// FallbackSlots apply to staff members whose template was never configured.
var FallbackSlots = []string{
	"09:00", "10:00", "11:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// BookingRef is the slice of an appointment the schedule editor needs when
// reporting conflicts.
type BookingRef struct {
	ID           string `json:"id"`
	Day          string `json:"day"`
	Time         string `json:"time"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
}

// EffectiveSlots resolves the working slots for one day. An override wins
// even when its slot list is empty (a day off). With no override the
// template's defaults apply, and with no template the fallback does.
// The result is always sorted, which for zero-padded HH:MM strings is
// chronological order.
func EffectiveSlots(defaultSlots []string, override *Override) []string {
	if override != nil {
		return sortedCopy(override.Slots)
	}

	if len(defaultSlots) > 0 {
		return sortedCopy(defaultSlots)
	}

	return sortedCopy(FallbackSlots)
}

// ResolveBookableSlots removes slots already held by active appointments.
func ResolveBookableSlots(effective, bookedTimes []string) []string {
	bookable := make([]string, 0, len(effective))

	for _, slot := range effective {
		if !slices.Contains(bookedTimes, slot) {
			bookable = append(bookable, slot)
		}
	}

	slices.Sort(bookable)

	return bookable
}

// FilterElapsedSlots drops slots on the given day that start within the
// buffer from now. Days other than now's day pass through untouched, so
// callers only pay the parse cost for today.
func FilterElapsedSlots(slots []string, day string, now time.Time, buffer time.Duration) []string {
	if day != now.Format(constant.DayFormat) {
		return slots
	}

	cutoff := now.Add(buffer).Format(constant.SlotFormat)

	upcoming := make([]string, 0, len(slots))

	for _, slot := range slots {
		if slot > cutoff {
			upcoming = append(upcoming, slot)
		}
	}

	return upcoming
}

// DetectConflicts returns the active bookings whose slot disappears under
// the proposed slot list.
func DetectConflicts(active []BookingRef, proposed []string) []BookingRef {
	conflicts := []BookingRef{}

	for _, booking := range active {
		if !slices.Contains(proposed, booking.Time) {
			conflicts = append(conflicts, booking)
		}
	}

	return conflicts
}

// MonthDays lists every day of the month containing day, in order.
func MonthDays(day string) []string {
	parsed, err := time.Parse(constant.DayFormat, day)
	if err != nil {
		return nil
	}

	first := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)

	days := []string{}
	for current := first; current.Month() == first.Month(); current = current.AddDate(0, 0, 1) {
		days = append(days, current.Format(constant.DayFormat))
	}

	return days
}

func sortedCopy(slots []string) []string {
	copied := make([]string, len(slots))
	copy(copied, slots)
	slices.Sort(copied)

	return copied
}
