package models

import "time"

// TimeRange is a wall-clock interval within a single day, e.g. 09:00-12:30.
type TimeRange struct {
	Start string `bson:"start" json:"start"` // "HH:MM", 24-hour
	End   string `bson:"end" json:"end"`     // "HH:MM", exclusive
}

// DaySchedule holds the open ranges for one weekday. Multiple disjoint
// ranges are allowed (e.g. morning + afternoon).
type DaySchedule struct {
	Enabled bool        `bson:"enabled" json:"enabled"`
	Slots   []TimeRange `bson:"slots" json:"slots"`
}

// WeeklyAvailability is a fixed record of seven named days rather than a
// keyed map, so a config can never gain or lose a weekday.
type WeeklyAvailability struct {
	Monday    DaySchedule `bson:"monday" json:"monday"`
	Tuesday   DaySchedule `bson:"tuesday" json:"tuesday"`
	Wednesday DaySchedule `bson:"wednesday" json:"wednesday"`
	Thursday  DaySchedule `bson:"thursday" json:"thursday"`
	Friday    DaySchedule `bson:"friday" json:"friday"`
	Saturday  DaySchedule `bson:"saturday" json:"saturday"`
	Sunday    DaySchedule `bson:"sunday" json:"sunday"`
}

// Day returns the schedule for the given weekday.
func (w WeeklyAvailability) Day(d time.Weekday) DaySchedule {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// SetDay replaces the schedule for the given weekday.
func (w *WeeklyAvailability) SetDay(d time.Weekday, s DaySchedule) {
	switch d {
	case time.Monday:
		w.Monday = s
	case time.Tuesday:
		w.Tuesday = s
	case time.Wednesday:
		w.Wednesday = s
	case time.Thursday:
		w.Thursday = s
	case time.Friday:
		w.Friday = s
	case time.Saturday:
		w.Saturday = s
	default:
		w.Sunday = s
	}
}

// DateOverride replaces the weekly pattern for one specific date.
// An empty Slots list means the day is closed.
type DateOverride struct {
	Date  string      `bson:"date" json:"date"` // "YYYY-MM-DD"
	Slots []TimeRange `bson:"slots" json:"slots"`
}

// AvailabilityConfig is a company's booking policy and recurring schedule.
type AvailabilityConfig struct {
	CompanyID          string             `bson:"companyId" json:"companyId"`
	DurationMinutes    int                `bson:"appointmentDurationMinutes" json:"appointmentDurationMinutes"`
	BufferMinutes      int                `bson:"bufferMinutes" json:"bufferMinutes"`
	MinAdvanceMinutes  int                `bson:"minAdvanceMinutes" json:"minAdvanceMinutes"`
	MaxAdvanceDays     int                `bson:"maxAdvanceDays" json:"maxAdvanceDays"`
	Timezone           string             `bson:"timezone" json:"timezone"`
	WeeklyAvailability WeeklyAvailability `bson:"weeklyAvailability" json:"weeklyAvailability"`
	DateOverrides      []DateOverride     `bson:"dateOverrides" json:"dateOverrides"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OverrideFor returns the override for the given date, if any.
func (c *AvailabilityConfig) OverrideFor(date string) (DateOverride, bool) {
	for _, o := range c.DateOverrides {
		if o.Date == date {
			return o, true
		}
	}
	return DateOverride{}, false
}

// AvailabilityConfigUpdate carries a partial config update. Nil fields keep
// their stored values; non-nil fields replace them wholesale.
type AvailabilityConfigUpdate struct {
	DurationMinutes    *int                `json:"appointmentDurationMinutes,omitempty"`
	BufferMinutes      *int                `json:"bufferMinutes,omitempty"`
	MinAdvanceMinutes  *int                `json:"minAdvanceMinutes,omitempty"`
	MaxAdvanceDays     *int                `json:"maxAdvanceDays,omitempty"`
	Timezone           *string             `json:"timezone,omitempty"`
	WeeklyAvailability *WeeklyAvailability `json:"weeklyAvailability,omitempty"`
	DateOverrides      []DateOverride      `json:"dateOverrides,omitempty"`
}

// Allowed policy enumerations. Appointment duration and buffer values come
// from fixed sets rather than free integers.
var (
	AllowedDurations = []int{15, 30, 45, 60, 90, 120}
	AllowedBuffers   = []int{0, 5, 10, 15, 20, 30, 60}
)

// IsAllowedDuration reports whether d is a permitted appointment duration.
func IsAllowedDuration(d int) bool {
	for _, v := range AllowedDurations {
		if v == d {
			return true
		}
	}
	return false
}

// IsAllowedBuffer reports whether b is a permitted buffer value.
func IsAllowedBuffer(b int) bool {
	for _, v := range AllowedBuffers {
		if v == b {
			return true
		}
	}
	return false
}

// DefaultAvailabilityConfig is what a company starts from before its
// administrators touch the configuration panel: Mon-Fri 09:00-17:00,
// 30-minute appointments, one hour of lead time, 30-day booking window.
func DefaultAvailabilityConfig(companyID, timezone string) AvailabilityConfig {
	if timezone == "" {
		timezone = "UTC"
	}
	workday := DaySchedule{Enabled: true, Slots: []TimeRange{{Start: "09:00", End: "17:00"}}}
	closed := DaySchedule{Enabled: false, Slots: []TimeRange{}}
	return AvailabilityConfig{
		CompanyID:         companyID,
		DurationMinutes:   30,
		BufferMinutes:     0,
		MinAdvanceMinutes: 60,
		MaxAdvanceDays:    30,
		Timezone:          timezone,
		WeeklyAvailability: WeeklyAvailability{
			Monday:    workday,
			Tuesday:   workday,
			Wednesday: workday,
			Thursday:  workday,
			Friday:    workday,
			Saturday:  closed,
			Sunday:    closed,
		},
		DateOverrides: []DateOverride{},
	}
}
