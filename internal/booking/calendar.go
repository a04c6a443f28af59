package booking

import "time"

// DayBounds returns the first and last millisecond of t's UTC calendar day.
func DayBounds(t time.Time) (start, end time.Time) {
	u := t.UTC()
	start = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// IsArrival reports whether b is a guest expected to check in during the day.
func IsArrival(b *Booking, dayStart, dayEnd time.Time) bool {
	return (b.Status == StatusUnconfirmed || b.Status == StatusConfirmed) &&
		within(b.StartDate, dayStart, dayEnd)
}

// IsDeparture reports whether b is a guest expected to check out during the day.
func IsDeparture(b *Booking, dayStart, dayEnd time.Time) bool {
	return b.Status == StatusCheckedIn && within(b.EndDate, dayStart, dayEnd)
}
