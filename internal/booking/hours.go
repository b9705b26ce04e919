package booking

import "time"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
	slotLayout = dateLayout + " " + timeLayout
)

// Hours are the weekly business-hour rules a slot is checked against.
// OpenHour is the first bookable hour, CloseHour the first closed one.
type Hours struct {
	OpenHour      int
	CloseHour     int
	ClosedWeekday time.Weekday
}

// DefaultHours: open 8:00-18:00, closed Sundays.
func DefaultHours() Hours {
	return Hours{OpenHour: 8, CloseHour: 18, ClosedWeekday: time.Sunday}
}

// ValidateSlot checks a proposed date and time-of-day against the rules.
// Checks run in order and the first failure wins: parse, past, closed day,
// operating window. The slot is interpreted as wall-clock time in now's
// location, matching how the customer entered it.
func (h Hours) ValidateSlot(dateStr, timeStr string, now time.Time) error {
	at, err := time.ParseInLocation(slotLayout, dateStr+" "+timeStr, now.Location())
	if err != nil {
		return ErrInvalidDateTime
	}
	if at.Before(now) {
		return ErrPastDateTime
	}
	if at.Weekday() == h.ClosedWeekday {
		return ErrClosedDay
	}
	if hour := at.Hour(); hour < h.OpenHour || hour >= h.CloseHour {
		return ErrOutsideHours
	}
	return nil
}
