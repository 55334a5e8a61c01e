package models

import "fmt"

// ClockToMinutes converts "HH:MM" wall-clock time to minutes from midnight.
func ClockToMinutes(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", clock)
	}
	return h*60 + m, nil
}

// MinutesToClock converts minutes from midnight to "HH:MM".
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IntervalsOverlap reports whether the half-open minute intervals
// [startA, endA) and [startB, endB) intersect.
func IntervalsOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// BufferedWindow returns the appointment's exclusion zone in minutes from
// midnight: its own interval widened by the buffer on both sides. Other
// bookings may not encroach on this window.
func (a *Appointment) BufferedWindow(bufferMinutes int) (int, int, error) {
	start, err := ClockToMinutes(a.Time)
	if err != nil {
		return 0, 0, err
	}
	return start - bufferMinutes, start + a.DurationMinutes + bufferMinutes, nil
}
