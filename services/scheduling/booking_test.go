package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appointmentRepo "curbe/database/repository/appointment"
	"curbe/models"
)

// fakeConfigProvider serves a single company's config.
type fakeConfigProvider struct {
	cfg *models.AvailabilityConfig
}

func (f *fakeConfigProvider) GetConfig(_ context.Context, companyID string) (*models.AvailabilityConfig, error) {
	if companyID != f.cfg.CompanyID {
		return nil, errors.New("company not found")
	}
	copied := *f.cfg
	return &copied, nil
}

// memoryAppointmentRepo mirrors the store's overlap semantics in memory so
// booking paths can be exercised without a database.
type memoryAppointmentRepo struct {
	mu    sync.Mutex
	appts []models.Appointment
}

func (r *memoryAppointmentRepo) GetByID(_ context.Context, companyID, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appts {
		if r.appts[i].CompanyID == companyID && r.appts[i].ID == appointmentID {
			copied := r.appts[i]
			return &copied, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (r *memoryAppointmentRepo) ListByCompanyAndDate(_ context.Context, companyID, date, status string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.CompanyID != companyID {
			continue
		}
		if date != "" && a.Date != date {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *memoryAppointmentRepo) ActiveByCompanyAndDate(_ context.Context, companyID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.CompanyID == companyID && a.Date == date && a.Active() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryAppointmentRepo) UpdateStatus(_ context.Context, companyID, appointmentID, status string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appts {
		if r.appts[i].CompanyID == companyID && r.appts[i].ID == appointmentID {
			r.appts[i].Status = status
			copied := r.appts[i]
			return &copied, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (r *memoryAppointmentRepo) InsertIfSlotFree(_ context.Context, appt *models.Appointment, bufferMinutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start, err := models.ClockToMinutes(appt.Time)
	if err != nil {
		return err
	}
	end := start + appt.DurationMinutes

	for i := range r.appts {
		a := &r.appts[i]
		if a.CompanyID != appt.CompanyID || a.Date != appt.Date || !a.Active() {
			continue
		}
		ws, we, err := a.BufferedWindow(bufferMinutes)
		if err != nil {
			return err
		}
		if models.IntervalsOverlap(start, end, ws, we) {
			return appointmentRepo.ErrSlotTaken
		}
	}
	r.appts = append(r.appts, *appt)
	return nil
}

func (r *memoryAppointmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appts)
}

func newTestEngine(cfg *models.AvailabilityConfig, now time.Time) (*DefaultSchedulingEngine, *memoryAppointmentRepo) {
	repo := &memoryAppointmentRepo{}
	engine := &DefaultSchedulingEngine{
		Config:       &fakeConfigProvider{cfg: cfg},
		Appointments: repo,
		Locker:       NewMemoryLocker(),
		PhoneRegion:  "US",
		Now:          func() time.Time { return now },
	}
	return engine, repo
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		CompanyID:       "comp-1",
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "(202) 555-0123",
		AppointmentDate: monday,
		AppointmentTime: "09:30",
	}
}

func TestBookSuccess(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, locNY(t))
	engine, repo := newTestEngine(newTestConfig(), now)

	appt, err := engine.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	if appt.ID == "" {
		t.Error("Book() returned appointment without an ID")
	}
	if appt.Status != models.StatusPending {
		t.Errorf("status = %s, want %s", appt.Status, models.StatusPending)
	}
	if appt.DurationMinutes != 30 {
		t.Errorf("durationMinutes = %d, want 30", appt.DurationMinutes)
	}
	if appt.Phone != "2025550123" {
		t.Errorf("phone = %q, want normalized digits", appt.Phone)
	}
	if repo.count() != 1 {
		t.Errorf("stored appointments = %d, want 1", repo.count())
	}
}

func TestBookSameSlotTwice(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, locNY(t))
	engine, repo := newTestEngine(newTestConfig(), now)

	if _, err := engine.Book(context.Background(), validRequest()); err != nil {
		t.Fatalf("first Book() error = %v", err)
	}

	_, err := engine.Book(context.Background(), validRequest())
	var conflict *SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("second Book() error = %v, want SlotConflictError", err)
	}
	if repo.count() != 1 {
		t.Errorf("stored appointments = %d, want 1", repo.count())
	}
}

func TestBookConcurrentSameSlot(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, locNY(t))
	engine, repo := newTestEngine(newTestConfig(), now)

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Book(context.Background(), validRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			var conflict *SlotConflictError
			if !errors.As(err, &conflict) {
				t.Errorf("unexpected error kind: %v", err)
				continue
			}
			conflicts++
		}
	}
	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1", wins)
	}
	if conflicts != attempts-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, attempts-1)
	}
	if repo.count() != 1 {
		t.Errorf("stored appointments = %d, want 1", repo.count())
	}
}

func TestBookCollectsAllFieldErrors(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, locNY(t))
	engine, repo := newTestEngine(newTestConfig(), now)

	req := models.BookingRequest{
		CompanyID:       "comp-1",
		FullName:        "   ",
		Email:           "not-an-email",
		Phone:           "abc",
		AppointmentDate: "June 9",
		AppointmentTime: "25:99",
	}

	_, err := engine.Book(context.Background(), req)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Book() error = %v, want ValidationError", err)
	}

	for _, field := range []string{"fullName", "email", "phone", "appointmentDate", "appointmentTime"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("ValidationError missing field %q: %v", field, verr.Fields)
		}
	}
	if repo.count() != 0 {
		t.Errorf("stored appointments = %d, want 0", repo.count())
	}
}

func TestBookAdvanceWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, locNY(t))
	engine, repo := newTestEngine(newTestConfig(), now)

	tests := []struct {
		name string
		date string
	}{
		{"past date", "2025-06-09"},
		{"beyond booking window", "2025-08-11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.AppointmentDate = tt.date

			_, err := engine.Book(context.Background(), req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Book() error = %v, want ValidationError", err)
			}
			if _, ok := verr.Fields["appointmentDate"]; !ok {
				t.Errorf("ValidationError missing appointmentDate: %v", verr.Fields)
			}
		})
	}
	if repo.count() != 0 {
		t.Errorf("stored appointments = %d, want 0", repo.count())
	}
}

func TestBookInsideMinAdvance(t *testing.T) {
	cfg := newTestConfig()
	cfg.MinAdvanceMinutes = 120
	// Same-day booking at 08:00 for a 09:30 slot: inside the lead window,
	// so the commit-time recheck rejects it as a conflict.
	now := time.Date(2025, 6, 9, 8, 0, 0, 0, locNY(t))
	engine, _ := newTestEngine(cfg, now)

	_, err := engine.Book(context.Background(), validRequest())
	var conflict *SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Book() error = %v, want SlotConflictError", err)
	}
}

func TestBookOffGridTime(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, locNY(t))
	engine, _ := newTestEngine(newTestConfig(), now)

	req := validRequest()
	req.AppointmentTime = "09:45"

	_, err := engine.Book(context.Background(), req)
	var conflict *SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Book() error = %v, want SlotConflictError", err)
	}
}

func TestBookAfterCancellation(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, locNY(t))
	engine, _ := newTestEngine(newTestConfig(), now)
	ctx := context.Background()

	first, err := engine.Book(ctx, validRequest())
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if _, err := engine.TransitionStatus(ctx, "comp-1", first.ID, models.StatusCancelled); err != nil {
		t.Fatalf("TransitionStatus() error = %v", err)
	}

	second, err := engine.Book(ctx, validRequest())
	if err != nil {
		t.Fatalf("rebooking cancelled slot: Book() error = %v", err)
	}
	if second.ID == first.ID {
		t.Error("rebooking returned the original appointment")
	}
}

func TestGetSlotsDurationOverride(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, locNY(t))
	engine, _ := newTestEngine(newTestConfig(), now)
	ctx := context.Background()

	slots, err := engine.GetSlots(ctx, "comp-1", monday, 60)
	if err != nil {
		t.Fatalf("GetSlots() error = %v", err)
	}
	if len(slots) != 3 {
		t.Errorf("len(slots) = %d, want 3 for 60-minute slots in a 3-hour window", len(slots))
	}

	_, err = engine.GetSlots(ctx, "comp-1", monday, 25)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("GetSlots(duration=25) error = %v, want ValidationError", err)
	}
}

func TestTransitionStatus(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, locNY(t))
	engine, _ := newTestEngine(newTestConfig(), now)
	ctx := context.Background()

	appt, err := engine.Book(ctx, validRequest())
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}

	confirmed, err := engine.TransitionStatus(ctx, "comp-1", appt.ID, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("TransitionStatus(confirmed) error = %v", err)
	}
	if confirmed.Status != models.StatusConfirmed {
		t.Errorf("status = %s, want %s", confirmed.Status, models.StatusConfirmed)
	}

	if _, err := engine.TransitionStatus(ctx, "comp-1", appt.ID, models.StatusPending); err == nil {
		t.Error("TransitionStatus(confirmed -> pending) succeeded, want error")
	}

	done, err := engine.TransitionStatus(ctx, "comp-1", appt.ID, models.StatusCompleted)
	if err != nil {
		t.Fatalf("TransitionStatus(completed) error = %v", err)
	}
	if done.Status != models.StatusCompleted {
		t.Errorf("status = %s, want %s", done.Status, models.StatusCompleted)
	}

	if _, err := engine.TransitionStatus(ctx, "comp-1", "missing", models.StatusCancelled); !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		t.Errorf("TransitionStatus(missing) error = %v, want ErrAppointmentNotFound", err)
	}
}
