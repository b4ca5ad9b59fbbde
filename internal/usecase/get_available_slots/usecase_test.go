package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SPA-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SPA-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/SPA-BookingService/pkg/types"
)

// --- фейки зависимостей ---

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
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
	venue      *venueservice.Venue
	treatments []*venueservice.Treatment
}

func (f *fakeVenueClient) GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error) {
	if f.venue == nil {
		return nil, venueservice.ErrVenueNotFound
	}
	return f.venue, nil
}

func (f *fakeVenueClient) GetTreatments(ctx context.Context, venueID int64, treatmentIDs []int64) ([]*venueservice.Treatment, error) {
	if len(treatmentIDs) > 0 && len(f.treatments) == 0 {
		return nil, venueservice.ErrTreatmentNotFound
	}
	return f.treatments, nil
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
	return &env{
		bookings: &fakeBookingRepo{},
		schedules: &fakeScheduleRepo{
			profile: &domain.VenueOperatingProfile{
				VenueID:             1,
				OpeningTime:         "09:00",
				ClosingTime:         "12:00",
				SlotIntervalMinutes: 30,
			},
		},
		resources: &fakeResourceRepo{rooms: 2, therapists: []int64{1, 2}},
		venues:    &fakeVenueClient{venue: &venueservice.Venue{ID: 1, IsActive: true}},
		// Тестовое "сейчас" задолго до запрашиваемой даты
		clock: &fakeTimeProvider{now: time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)},
	}
}

func (e *env) usecase() *UseCase {
	uc := NewUseCase(e.bookings, e.schedules, e.resources, e.venues, noopLogger{})
	uc.timeProvider = e.clock
	return uc
}

func futureDate() time.Time {
	return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC) // понедельник
}

// --- тесты ---

func TestExecute_FullGrid(t *testing.T) {
	e := newEnv()

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)

	expected := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	assert.Equal(t, expected, resp.Slots)
	assert.Equal(t, 30, resp.SlotIntervalMinutes)
	assert.Empty(t, resp.Reason)
}

func TestExecute_DefaultProfileWhenMissing(t *testing.T) {
	e := newEnv()
	e.schedules.profile = nil

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)

	// Дефолтные часы 06:00-23:00 с шагом 30 дают 34 слота
	assert.Len(t, resp.Slots, 34)
	assert.Equal(t, types.TimeString("06:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("22:30"), resp.Slots[len(resp.Slots)-1])
}

func TestExecute_VenueNotFound(t *testing.T) {
	e := newEnv()
	e.venues.venue = nil

	_, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_TreatmentNotFound(t *testing.T) {
	e := newEnv()

	_, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate(), TreatmentIDs: []int64{99}})
	assert.ErrorIs(t, err, ErrTreatmentNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	e := newEnv()
	past := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	_, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: past})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	e := newEnv()
	e.schedules.profile.AdvanceBookingDays = 3

	_, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_NoCapacityReason(t *testing.T) {
	e := newEnv()
	e.resources.rooms = 0

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, domain.ReasonNoCapacity, resp.Reason)
}

func TestExecute_NoTherapistsReason(t *testing.T) {
	e := newEnv()
	e.resources.therapists = nil

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, domain.ReasonNoCapacity, resp.Reason)
}

func TestExecute_VenueNotDeployedReason(t *testing.T) {
	e := newEnv()
	// Площадка работает только по вторникам, а запрошен понедельник
	e.schedules.schedule = &domain.DeploymentSchedule{
		Type:                    domain.ScheduleRecurringWeekly,
		DaysOfWeek:              []int{2},
		RecurrenceIntervalWeeks: 1,
		RecurringStartDate:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, domain.ReasonVenueNotDeployed, resp.Reason)
}

func TestExecute_NoCapacityCheckedBeforeSchedule(t *testing.T) {
	// При одновременном отсутствии ёмкости и закрытом расписании
	// причина - no_capacity: ресурсные пулы проверяются раньше
	e := newEnv()
	e.resources.rooms = 0
	e.schedules.schedule = &domain.DeploymentSchedule{
		Type:                    domain.ScheduleRecurringWeekly,
		DaysOfWeek:              []int{},
		RecurrenceIntervalWeeks: 1,
		RecurringStartDate:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonNoCapacity, resp.Reason)
}

func TestExecute_EmptyByFiltering_NoReason(t *testing.T) {
	// Все слоты закрыты бронированиями: результат пуст, но причина не
	// указывается - структурно площадка доступна
	e := newEnv()
	e.resources.rooms = 1
	e.resources.therapists = []int64{1}
	e.bookings.bookings = []*domain.Booking{
		{StartTime: "09:00", DurationMinutes: 180, Status: domain.StatusConfirmed},
	}

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Empty(t, resp.Reason)
}

func TestExecute_BlockedWindowFiltersSlots(t *testing.T) {
	e := newEnv()
	e.schedules.windows = []*domain.BlockedWindow{
		{StartTime: "10:00", EndTime: "11:00", IsActive: true},
	}

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)

	// [09:45..) не генерируется, окно вырезает 10:00 и 10:30
	expected := []types.TimeString{"09:00", "09:30", "11:00", "11:30"}
	assert.Equal(t, expected, resp.Slots)
}

func TestExecute_SameDayLeadTimeGate(t *testing.T) {
	e := newEnv()
	// Запрос на сегодняшний день, сейчас 09:47, lead time процедуры 15 минут:
	// 10:02 округляется вверх до 10:30
	e.clock.now = time.Date(2025, time.March, 10, 9, 47, 0, 0, time.UTC)
	e.venues.treatments = []*venueservice.Treatment{
		{ID: 5, VenueID: 1, LeadTimeMinutes: 15, IsActive: true},
	}

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate(), TreatmentIDs: []int64{5}})
	require.NoError(t, err)

	expected := []types.TimeString{"10:30", "11:00", "11:30"}
	assert.Equal(t, expected, resp.Slots)
}

func TestExecute_LeadTimeNotAppliedToFutureDates(t *testing.T) {
	e := newEnv()
	e.clock.now = time.Date(2025, time.March, 9, 23, 0, 0, 0, time.UTC)
	e.venues.treatments = []*venueservice.Treatment{
		{ID: 5, VenueID: 1, LeadTimeMinutes: 240, IsActive: true},
	}

	// Завтрашний день: lead time не отсекает утренние слоты
	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate(), TreatmentIDs: []int64{5}})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
}

func TestExecute_CapacityPoolsIndependent(t *testing.T) {
	e := newEnv()
	e.resources.rooms = 2
	e.resources.therapists = []int64{1}
	t1 := int64(1)
	e.bookings.bookings = []*domain.Booking{
		// Комната свободна, но единственный терапевт занят в 10:00-10:30
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed, TherapistID: &t1},
	}

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.Contains(t, resp.Slots, types.TimeString("10:30"))
}

func TestExecute_AddingBookingOnlyRemovesSlots(t *testing.T) {
	// Добавление активного бронирования может только сужать список слотов:
	// повторный запрос с одним лишним бронированием возвращает подмножество
	e := newEnv()
	e.resources.rooms = 1
	e.resources.therapists = []int64{1}
	t1 := int64(1)
	e.bookings.bookings = []*domain.Booking{
		{StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusConfirmed, TherapistID: &t1},
	}

	before, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)
	require.NotEmpty(t, before.Slots)

	e.bookings.bookings = append(e.bookings.bookings, &domain.Booking{
		StartTime: "10:30", DurationMinutes: 60, Status: domain.StatusConfirmed, TherapistID: &t1,
	})

	after, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)

	for _, slot := range after.Slots {
		assert.Contains(t, before.Slots, slot)
	}
	assert.Less(t, len(after.Slots), len(before.Slots))
}

func TestExecute_SlotsAreSortedAscending(t *testing.T) {
	e := newEnv()

	resp, err := e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate()})
	require.NoError(t, err)

	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].IsBefore(resp.Slots[i]))
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newEnv()

	_, err := e.usecase().Execute(context.Background(), &Request{VenueID: 0, Date: futureDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.usecase().Execute(context.Background(), &Request{VenueID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.usecase().Execute(context.Background(), &Request{VenueID: 1, Date: futureDate(), TreatmentIDs: []int64{-1}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
