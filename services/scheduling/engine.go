package scheduling

import (
	"fmt"
	"sort"
	"time"

	"curbe/models"
)

// busyWindow is an appointment's buffered exclusion zone in minutes from midnight.
type busyWindow struct {
	start int
	end   int
}

// ComputeSlots derives the annotated slot list for one company date. It is a
// pure function of the config, the existing appointments and the supplied
// clock; it owns no state and may run with unlimited parallelism.
//
// Dates outside the advance window yield an empty list, not an error, and
// unavailable slots are included so callers can render them disabled.
func ComputeSlots(
	cfg *models.AvailabilityConfig,
	date string,
	existing []models.Appointment,
	now time.Time,
) ([]models.Slot, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	localNow := now.In(loc)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) || day.After(today.AddDate(0, 0, cfg.MaxAdvanceDays)) {
		return []models.Slot{}, nil
	}

	ranges, err := openRanges(cfg, date, day.Weekday())
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return []models.Slot{}, nil
	}

	busy, err := busyWindows(existing, cfg.BufferMinutes)
	if err != nil {
		return nil, err
	}

	earliest := now.Add(time.Duration(cfg.MinAdvanceMinutes) * time.Minute)
	duration := cfg.DurationMinutes

	var slots []models.Slot
	for _, r := range ranges {
		start, err := models.ClockToMinutes(r.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid range start: %w", err)
		}
		end, err := models.ClockToMinutes(r.End)
		if err != nil {
			return nil, fmt.Errorf("invalid range end: %w", err)
		}

		for m := start; m+duration <= end; m += duration {
			slotStart := day.Add(time.Duration(m) * time.Minute)
			if slotStart.Before(earliest) {
				continue
			}

			available := true
			for _, w := range busy {
				if models.IntervalsOverlap(m, m+duration, w.start, w.end) {
					available = false
					break
				}
			}

			slots = append(slots, models.Slot{
				Time:      models.MinutesToClock(m),
				Available: available,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })
	return slots, nil
}

// openRanges resolves the day's open intervals: an exact-date override wins
// (empty override means the day is closed), otherwise the weekly pattern.
func openRanges(cfg *models.AvailabilityConfig, date string, weekday time.Weekday) ([]models.TimeRange, error) {
	if override, ok := cfg.OverrideFor(date); ok {
		return override.Slots, nil
	}
	day := cfg.WeeklyAvailability.Day(weekday)
	if !day.Enabled {
		return nil, nil
	}
	return day.Slots, nil
}

func busyWindows(existing []models.Appointment, bufferMinutes int) ([]busyWindow, error) {
	windows := make([]busyWindow, 0, len(existing))
	for i := range existing {
		if !existing[i].Active() {
			continue
		}
		start, end, err := existing[i].BufferedWindow(bufferMinutes)
		if err != nil {
			return nil, fmt.Errorf("appointment %s has invalid time: %w", existing[i].ID, err)
		}
		windows = append(windows, busyWindow{start: start, end: end})
	}
	return windows, nil
}

// SlotIsAvailable re-runs the availability predicate for one specific start
// time. The booking resolver calls this at commit time, under the per-day
// lock, against a fresh read of the appointment set.
func SlotIsAvailable(
	cfg *models.AvailabilityConfig,
	date, clock string,
	existing []models.Appointment,
	now time.Time,
) (bool, error) {
	slots, err := ComputeSlots(cfg, date, existing, now)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s.Time == clock {
			return s.Available, nil
		}
	}
	return false, nil
}
