package availability

import (
	"context"
	"errors"
	"sort"
	"time"

	availabilityRepo "curbe/database/repository/availability"
	companyRepo "curbe/database/repository/company"
	"curbe/models"
)

// Service owns each company's availability configuration: the recurring
// weekly schedule, per-date overrides and the booking policy.
type Service interface {
	GetConfig(ctx context.Context, companyID string) (*models.AvailabilityConfig, error)
	// UpdateConfig applies a partial update wholesale: either every field
	// validates and the whole config is stored, or nothing changes.
	UpdateConfig(ctx context.Context, companyID string, update models.AvailabilityConfigUpdate) (*models.AvailabilityConfig, error)
}

// DefaultService is the production configuration store.
type DefaultService struct {
	Repo      availabilityRepo.AvailabilityRepository
	Companies companyRepo.CompanyRepository
}

// GetConfig returns the stored configuration, or the company default when the
// administrators have not touched the configuration panel yet.
func (s *DefaultService) GetConfig(ctx context.Context, companyID string) (*models.AvailabilityConfig, error) {
	cfg, err := s.Repo.Get(ctx, companyID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, availabilityRepo.ErrConfigNotFound) {
		return nil, err
	}

	company, err := s.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	def := models.DefaultAvailabilityConfig(companyID, company.Timezone)
	return &def, nil
}

func (s *DefaultService) UpdateConfig(ctx context.Context, companyID string, update models.AvailabilityConfigUpdate) (*models.AvailabilityConfig, error) {
	current, err := s.GetConfig(ctx, companyID)
	if err != nil {
		return nil, err
	}

	next := *current
	if update.DurationMinutes != nil {
		next.DurationMinutes = *update.DurationMinutes
	}
	if update.BufferMinutes != nil {
		next.BufferMinutes = *update.BufferMinutes
	}
	if update.MinAdvanceMinutes != nil {
		next.MinAdvanceMinutes = *update.MinAdvanceMinutes
	}
	if update.MaxAdvanceDays != nil {
		next.MaxAdvanceDays = *update.MaxAdvanceDays
	}
	if update.Timezone != nil {
		next.Timezone = *update.Timezone
	}
	if update.WeeklyAvailability != nil {
		next.WeeklyAvailability = *update.WeeklyAvailability
	}
	if update.DateOverrides != nil {
		next.DateOverrides = mergeOverrides(current.DateOverrides, update.DateOverrides)
	}

	if err := validateConfig(&next); err != nil {
		return nil, err
	}
	normalizeConfig(&next)

	if err := s.Repo.Put(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// mergeOverrides upserts incoming overrides by exact date: an override for a
// date that already exists replaces the stored one rather than appending.
func mergeOverrides(current, incoming []models.DateOverride) []models.DateOverride {
	byDate := make(map[string]models.DateOverride, len(current)+len(incoming))
	for _, o := range current {
		byDate[o.Date] = o
	}
	for _, o := range incoming {
		byDate[o.Date] = o
	}

	merged := make([]models.DateOverride, 0, len(byDate))
	for _, o := range byDate {
		merged = append(merged, o)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })
	return merged
}

// normalizeConfig orders each day's ranges chronologically. Validation has
// already established that ranges parse and do not overlap.
func normalizeConfig(cfg *models.AvailabilityConfig) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		day := cfg.WeeklyAvailability.Day(d)
		sortRanges(day.Slots)
		cfg.WeeklyAvailability.SetDay(d, day)
	}
	for i := range cfg.DateOverrides {
		sortRanges(cfg.DateOverrides[i].Slots)
	}
}

func sortRanges(ranges []models.TimeRange) {
	sort.Slice(ranges, func(i, j int) bool {
		a, _ := models.ClockToMinutes(ranges[i].Start)
		b, _ := models.ClockToMinutes(ranges[j].Start)
		return a < b
	})
}
