package availability

import (
	"context"
	"errors"
	"reflect"
	"testing"

	availabilityRepo "curbe/database/repository/availability"
	companyRepo "curbe/database/repository/company"
	"curbe/models"
	"curbe/services/scheduling"
)

type memoryAvailabilityRepo struct {
	configs map[string]models.AvailabilityConfig
}

func newMemoryAvailabilityRepo() *memoryAvailabilityRepo {
	return &memoryAvailabilityRepo{configs: make(map[string]models.AvailabilityConfig)}
}

func (r *memoryAvailabilityRepo) Get(_ context.Context, companyID string) (*models.AvailabilityConfig, error) {
	cfg, ok := r.configs[companyID]
	if !ok {
		return nil, availabilityRepo.ErrConfigNotFound
	}
	copied := cfg
	return &copied, nil
}

func (r *memoryAvailabilityRepo) Put(_ context.Context, config *models.AvailabilityConfig) error {
	r.configs[config.CompanyID] = *config
	return nil
}

type memoryCompanyRepo struct {
	companies map[string]models.Company
}

func (r *memoryCompanyRepo) Create(_ context.Context, company *models.Company) error {
	r.companies[company.ID] = *company
	return nil
}

func (r *memoryCompanyRepo) GetByID(_ context.Context, id string) (*models.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, companyRepo.ErrCompanyNotFound
	}
	copied := c
	return &copied, nil
}

func (r *memoryCompanyRepo) Update(_ context.Context, company *models.Company) error {
	r.companies[company.ID] = *company
	return nil
}

func (r *memoryCompanyRepo) Delete(_ context.Context, id string) error {
	delete(r.companies, id)
	return nil
}

func newTestService() (*DefaultService, *memoryAvailabilityRepo) {
	repo := newMemoryAvailabilityRepo()
	companies := &memoryCompanyRepo{companies: map[string]models.Company{
		"comp-1": {ID: "comp-1", Name: "Curbe Cuts", Timezone: "America/New_York"},
	}}
	return &DefaultService{Repo: repo, Companies: companies}, repo
}

func intPtr(v int) *int { return &v }

func TestGetConfigDefaults(t *testing.T) {
	svc, _ := newTestService()

	cfg, err := svc.GetConfig(context.Background(), "comp-1")
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}

	if cfg.Timezone != "America/New_York" {
		t.Errorf("timezone = %s, want the company's timezone", cfg.Timezone)
	}
	if cfg.DurationMinutes != 30 {
		t.Errorf("durationMinutes = %d, want 30", cfg.DurationMinutes)
	}
	if !cfg.WeeklyAvailability.Monday.Enabled || cfg.WeeklyAvailability.Sunday.Enabled {
		t.Error("default weekly pattern should enable weekdays only")
	}
}

func TestGetConfigUnknownCompany(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetConfig(context.Background(), "nope")
	if !errors.Is(err, companyRepo.ErrCompanyNotFound) {
		t.Errorf("GetConfig() error = %v, want ErrCompanyNotFound", err)
	}
}

func TestUpdateConfigRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	weekly := models.WeeklyAvailability{
		Tuesday: models.DaySchedule{Enabled: true, Slots: []models.TimeRange{
			{Start: "13:00", End: "17:00"},
			{Start: "09:00", End: "12:00"},
		}},
	}
	updated, err := svc.UpdateConfig(ctx, "comp-1", models.AvailabilityConfigUpdate{
		DurationMinutes:    intPtr(45),
		BufferMinutes:      intPtr(15),
		WeeklyAvailability: &weekly,
	})
	if err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}

	if updated.DurationMinutes != 45 || updated.BufferMinutes != 15 {
		t.Errorf("policy = %d/%d, want 45/15", updated.DurationMinutes, updated.BufferMinutes)
	}
	wantSlots := []models.TimeRange{{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "17:00"}}
	if !reflect.DeepEqual(updated.WeeklyAvailability.Tuesday.Slots, wantSlots) {
		t.Errorf("tuesday ranges = %v, want sorted %v", updated.WeeklyAvailability.Tuesday.Slots, wantSlots)
	}

	stored, err := svc.GetConfig(ctx, "comp-1")
	if err != nil {
		t.Fatalf("GetConfig() after update error = %v", err)
	}
	if !reflect.DeepEqual(stored, updated) {
		t.Errorf("stored config = %+v, want %+v", stored, updated)
	}
}

func TestUpdateConfigPartialKeepsRest(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.UpdateConfig(ctx, "comp-1", models.AvailabilityConfigUpdate{DurationMinutes: intPtr(60)}); err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}
	cfg, err := svc.UpdateConfig(ctx, "comp-1", models.AvailabilityConfigUpdate{BufferMinutes: intPtr(10)})
	if err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}

	if cfg.DurationMinutes != 60 {
		t.Errorf("durationMinutes = %d, want earlier update preserved", cfg.DurationMinutes)
	}
	if cfg.BufferMinutes != 10 {
		t.Errorf("bufferMinutes = %d, want 10", cfg.BufferMinutes)
	}
}

func TestUpdateConfigOverrideReplacement(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first := []models.DateOverride{{Date: "2025-07-04", Slots: []models.TimeRange{{Start: "10:00", End: "12:00"}}}}
	if _, err := svc.UpdateConfig(ctx, "comp-1", models.AvailabilityConfigUpdate{DateOverrides: first}); err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}

	second := []models.DateOverride{
		{Date: "2025-07-04", Slots: []models.TimeRange{}}, // now fully closed
		{Date: "2025-07-05", Slots: []models.TimeRange{{Start: "09:00", End: "11:00"}}},
	}
	cfg, err := svc.UpdateConfig(ctx, "comp-1", models.AvailabilityConfigUpdate{DateOverrides: second})
	if err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}

	if len(cfg.DateOverrides) != 2 {
		t.Fatalf("len(dateOverrides) = %d, want 2 (same-date override replaced)", len(cfg.DateOverrides))
	}
	if cfg.DateOverrides[0].Date != "2025-07-04" || len(cfg.DateOverrides[0].Slots) != 0 {
		t.Errorf("override[0] = %+v, want replaced closed day", cfg.DateOverrides[0])
	}
	if cfg.DateOverrides[1].Date != "2025-07-05" {
		t.Errorf("override[1] date = %s, want 2025-07-05", cfg.DateOverrides[1].Date)
	}
}

func TestUpdateConfigRejectsWholesale(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	weekly := models.WeeklyAvailability{
		Monday: models.DaySchedule{Enabled: true, Slots: []models.TimeRange{
			{Start: "09:00", End: "11:00"},
			{Start: "10:30", End: "12:00"},
		}},
	}
	_, err := svc.UpdateConfig(ctx, "comp-1", models.AvailabilityConfigUpdate{
		DurationMinutes:    intPtr(25),
		BufferMinutes:      intPtr(7),
		MaxAdvanceDays:     intPtr(0),
		Timezone:           strPtr("Mars/Olympus"),
		WeeklyAvailability: &weekly,
	})

	var verr *scheduling.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("UpdateConfig() error = %v, want ValidationError", err)
	}
	for _, field := range []string{
		"appointmentDurationMinutes",
		"bufferMinutes",
		"maxAdvanceDays",
		"timezone",
		"weeklyAvailability.monday",
	} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("ValidationError missing field %q: %v", field, verr.Fields)
		}
	}
	if len(repo.configs) != 0 {
		t.Error("invalid update must not persist anything")
	}
}

func strPtr(v string) *string { return &v }

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		ranges []models.TimeRange
		wantOK bool
	}{
		{"empty", nil, true},
		{"single", []models.TimeRange{{Start: "09:00", End: "17:00"}}, true},
		{"touching ranges", []models.TimeRange{{Start: "09:00", End: "12:00"}, {Start: "12:00", End: "17:00"}}, true},
		{"unsorted but disjoint", []models.TimeRange{{Start: "13:00", End: "17:00"}, {Start: "09:00", End: "12:00"}}, true},
		{"start equals end", []models.TimeRange{{Start: "09:00", End: "09:00"}}, false},
		{"start after end", []models.TimeRange{{Start: "17:00", End: "09:00"}}, false},
		{"overlapping", []models.TimeRange{{Start: "09:00", End: "12:00"}, {Start: "11:00", End: "14:00"}}, false},
		{"bad clock", []models.TimeRange{{Start: "9am", End: "17:00"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateRanges(tt.ranges)
			if (msg == "") != tt.wantOK {
				t.Errorf("validateRanges(%v) = %q, wantOK %v", tt.ranges, msg, tt.wantOK)
			}
		})
	}
}

func TestValidateConfigDuplicateOverride(t *testing.T) {
	cfg := models.DefaultAvailabilityConfig("comp-1", "UTC")
	cfg.DateOverrides = []models.DateOverride{
		{Date: "2025-07-04", Slots: nil},
		{Date: "2025-07-04", Slots: nil},
	}

	err := validateConfig(&cfg)
	var verr *scheduling.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("validateConfig() error = %v, want ValidationError", err)
	}
	if _, ok := verr.Fields["dateOverrides[2025-07-04]"]; !ok {
		t.Errorf("ValidationError missing duplicate-override field: %v", verr.Fields)
	}
}
