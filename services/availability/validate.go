package availability

import (
	"fmt"
	"sort"
	"time"

	"curbe/models"
	"curbe/services/scheduling"
)

var weekdayFieldNames = map[time.Weekday]string{
	time.Monday:    "weeklyAvailability.monday",
	time.Tuesday:   "weeklyAvailability.tuesday",
	time.Wednesday: "weeklyAvailability.wednesday",
	time.Thursday:  "weeklyAvailability.thursday",
	time.Friday:    "weeklyAvailability.friday",
	time.Saturday:  "weeklyAvailability.saturday",
	time.Sunday:    "weeklyAvailability.sunday",
}

// validateConfig checks the whole config and reports every offending field
// at once. An invalid config is rejected wholesale; nothing is applied.
func validateConfig(cfg *models.AvailabilityConfig) error {
	fields := make(map[string]string)

	if !models.IsAllowedDuration(cfg.DurationMinutes) {
		fields["appointmentDurationMinutes"] = fmt.Sprintf("must be one of %v", models.AllowedDurations)
	}
	if !models.IsAllowedBuffer(cfg.BufferMinutes) {
		fields["bufferMinutes"] = fmt.Sprintf("must be one of %v", models.AllowedBuffers)
	}
	if cfg.MinAdvanceMinutes < 0 {
		fields["minAdvanceMinutes"] = "must not be negative"
	}
	if cfg.MaxAdvanceDays < 1 || cfg.MaxAdvanceDays > 365 {
		fields["maxAdvanceDays"] = "must be between 1 and 365"
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		fields["timezone"] = "must be a valid IANA timezone name"
	}

	for d := time.Sunday; d <= time.Saturday; d++ {
		day := cfg.WeeklyAvailability.Day(d)
		if msg := validateRanges(day.Slots); msg != "" {
			fields[weekdayFieldNames[d]] = msg
		}
	}

	seenDates := make(map[string]bool)
	for _, o := range cfg.DateOverrides {
		field := fmt.Sprintf("dateOverrides[%s]", o.Date)
		if _, err := time.Parse("2006-01-02", o.Date); err != nil {
			fields[field] = "date must be a valid YYYY-MM-DD date"
			continue
		}
		if seenDates[o.Date] {
			fields[field] = "duplicate override for the same date"
			continue
		}
		seenDates[o.Date] = true
		if msg := validateRanges(o.Slots); msg != "" {
			fields[field] = msg
		}
	}

	if len(fields) > 0 {
		return scheduling.NewValidationError(fields)
	}
	return nil
}

// validateRanges checks that every range parses, runs start < end, and that
// no two ranges on the same day overlap. Returns "" when the ranges are sane.
func validateRanges(ranges []models.TimeRange) string {
	type span struct{ start, end int }
	spans := make([]span, 0, len(ranges))

	for _, r := range ranges {
		start, err := models.ClockToMinutes(r.Start)
		if err != nil {
			return fmt.Sprintf("range start %q is not a valid HH:MM time", r.Start)
		}
		end, err := models.ClockToMinutes(r.End)
		if err != nil {
			return fmt.Sprintf("range end %q is not a valid HH:MM time", r.End)
		}
		if start >= end {
			return fmt.Sprintf("range %s-%s must start before it ends", r.Start, r.End)
		}
		spans = append(spans, span{start, end})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return "ranges must not overlap"
		}
	}
	return ""
}
