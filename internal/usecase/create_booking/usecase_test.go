package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SPA-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SPA-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/SPA-BookingService/pkg/ptr"
)

// --- фейки зависимостей ---

type fakeBookingRepo struct {
	bookings []*domain.Booking
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	profile  *domain.VenueOperatingProfile
	schedule *domain.DeploymentSchedule
	windows  []*domain.BlockedWindow
}

func (f *fakeScheduleRepo) GetOperatingProfile(ctx context.Context, venueID int64) (*domain.VenueOperatingProfile, error) {
	if f.profile == nil {
		return nil, scheduleRepo.ErrProfileNotFound
	}
	return f.profile, nil
}

func (f *fakeScheduleRepo) GetDeploymentSchedule(ctx context.Context, venueID int64) (*domain.DeploymentSchedule, error) {
	if f.schedule == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.schedule, nil
}

func (f *fakeScheduleRepo) GetActiveBlockedWindows(ctx context.Context, venueID int64) ([]*domain.BlockedWindow, error) {
	return f.windows, nil
}

type fakeResourceRepo struct {
	rooms      int
	therapists []int64
}

func (f *fakeResourceRepo) GetActiveRoomCount(ctx context.Context, venueID int64) (int, error) {
	return f.rooms, nil
}

func (f *fakeResourceRepo) GetActiveTherapistIDs(ctx context.Context, venueID int64) ([]int64, error) {
	return f.therapists, nil
}

type fakeVenueClient struct {
	venue     *venueservice.Venue
	treatment *venueservice.Treatment
}

func (f *fakeVenueClient) GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error) {
	if f.venue == nil {
		return nil, venueservice.ErrVenueNotFound
	}
	return f.venue, nil
}

func (f *fakeVenueClient) GetTreatment(ctx context.Context, venueID, treatmentID int64) (*venueservice.Treatment, error) {
	if f.treatment == nil {
		return nil, venueservice.ErrTreatmentNotFound
	}
	return f.treatment, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// --- сборка тестового окружения ---

type env struct {
	bookings  *fakeBookingRepo
	schedules *fakeScheduleRepo
	resources *fakeResourceRepo
	venues    *fakeVenueClient
	clock     *fakeTimeProvider
}

func newEnv() *env {
	price := 1500.0
	return &env{
		bookings: &fakeBookingRepo{},
		schedules: &fakeScheduleRepo{
			profile: &domain.VenueOperatingProfile{
				VenueID:             1,
				OpeningTime:         "09:00",
				ClosingTime:         "18:00",
				SlotIntervalMinutes: 30,
			},
		},
		resources: &fakeResourceRepo{rooms: 2, therapists: []int64{1, 2}},
		venues: &fakeVenueClient{
			venue: &venueservice.Venue{ID: 1, IsActive: true},
			treatment: &venueservice.Treatment{
				ID:              5,
				VenueID:         1,
				Name:            "Massage",
				Price:           &price,
				DurationMinutes: 60,
				IsActive:        true,
			},
		},
		clock: &fakeTimeProvider{now: time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)},
	}
}

func (e *env) usecase() *UseCase {
	uc := NewUseCase(e.bookings, e.schedules, e.resources, e.venues, fakeTxManager{}, noopLogger{})
	uc.timeProvider = e.clock
	return uc
}

func futureDate() time.Time {
	return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC) // понедельник
}

func validRequest() *Request {
	return &Request{
		UserID:      42,
		VenueID:     1,
		TreatmentID: 5,
		Date:        futureDate(),
		StartTime:   "10:00",
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.usecase().Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Massage", resp.TreatmentName)
	assert.Equal(t, 1500.0, resp.TreatmentPrice)
	require.NotNil(t, resp.TherapistID)
	assert.Equal(t, int64(1), *resp.TherapistID)
}

func TestExecute_AssignsFirstFreeTherapist(t *testing.T) {
	e := newEnv()
	e.bookings.bookings = []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed, TherapistID: ptr.Ptr(int64(1))},
	}

	resp, err := e.usecase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.TherapistID)
	assert.Equal(t, int64(2), *resp.TherapistID)
}

func TestExecute_VenueNotFound(t *testing.T) {
	e := newEnv()
	e.venues.venue = nil

	_, err := e.usecase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_TreatmentNotFound(t *testing.T) {
	e := newEnv()
	e.venues.treatment = nil

	_, err := e.usecase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTreatmentNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.Date = time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	_, err := e.usecase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SlotOffGrid(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.StartTime = "10:15" // сетка 09:00 + k*30

	_, err := e.usecase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotOutsideOperatingHours(t *testing.T) {
	e := newEnv()

	req := validRequest()
	req.StartTime = "08:00"
	_, err := e.usecase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// Слот, начинающийся ровно в closingTime, тоже вне рабочих часов
	req.StartTime = "18:00"
	_, err = e.usecase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_VenueClosedOnDate(t *testing.T) {
	e := newEnv()
	// Работает только по вторникам
	e.schedules.schedule = &domain.DeploymentSchedule{
		Type:                    domain.ScheduleRecurringWeekly,
		DaysOfWeek:              []int{2},
		RecurrenceIntervalWeeks: 1,
		RecurringStartDate:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := e.usecase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVenueClosed)
}

func TestExecute_SlotBlocked(t *testing.T) {
	e := newEnv()
	e.schedules.windows = []*domain.BlockedWindow{
		{StartTime: "10:00", EndTime: "11:00", IsActive: true},
	}

	_, err := e.usecase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestExecute_TooLateToBook(t *testing.T) {
	e := newEnv()
	// Сегодняшний день, сейчас 09:50, lead time 30 минут: слот 10:00 недоступен
	e.clock.now = time.Date(2025, time.March, 10, 9, 50, 0, 0, time.UTC)
	e.venues.treatment.LeadTimeMinutes = 30

	_, err := e.usecase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_NoRooms(t *testing.T) {
	e := newEnv()
	e.resources.rooms = 1
	e.bookings.bookings = []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}

	_, err := e.usecase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_AllTherapistsBusy(t *testing.T) {
	e := newEnv()
	e.resources.rooms = 10
	e.bookings.bookings = []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed, TherapistID: ptr.Ptr(int64(1))},
		{StartTime: "09:30", DurationMinutes: 60, Status: domain.StatusConfirmed, TherapistID: ptr.Ptr(int64(2))},
	}

	_, err := e.usecase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CancelledBookingsDoNotBlock(t *testing.T) {
	e := newEnv()
	e.resources.rooms = 1
	e.resources.therapists = []int64{1}
	e.bookings.bookings = []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusCancelledByUser, TherapistID: ptr.Ptr(int64(1))},
	}

	_, err := e.usecase().Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ZeroCapacity(t *testing.T) {
	e := newEnv()
	e.resources.rooms = 0

	_, err := e.usecase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newEnv()

	req := validRequest()
	req.UserID = 0
	_, err := e.usecase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.StartTime = "25:00"
	_, err = e.usecase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_DefaultDurationWhenTreatmentHasNone(t *testing.T) {
	e := newEnv()
	e.venues.treatment.DurationMinutes = 0

	resp, err := e.usecase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTreatmentDurationMinutes, resp.DurationMinutes)
}
