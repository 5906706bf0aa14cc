package booking

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/idhash"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/observability"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishBooking(ctx context.Context, eventType string, booking domain.Booking) error {
	args := m.Called(ctx, eventType, booking)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ReadAll(ctx context.Context) []domain.Booking {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking)
}

func (m *MockBookingRepository) WriteAll(ctx context.Context, bookings []domain.Booking) error {
	args := m.Called(ctx, bookings)
	return args.Error(0)
}

func (m *MockBookingRepository) Find(ctx context.Context, userID, flightID string) (*domain.Booking, bool) {
	args := m.Called(ctx, userID, flightID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Booking), args.Bool(1)
}

func (m *MockBookingRepository) Insert(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Replace(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

var fixedNow = time.Date(2025, 11, 3, 14, 5, 9, 0, time.Local)

func newFileRepo(t *testing.T) *repository.FileBookingRepository {
	t.Helper()
	return repository.NewFileBookingRepository(filepath.Join(t.TempDir(), "bookings.json"), observability.Discard())
}

func aliceInput() CreateBookingInput {
	return CreateBookingInput{FlightID: "F1", PassengerName: "Alice", PassengerEmail: "a@x.com"}
}

func TestBookingService_CreateBooking_NewBooking(t *testing.T) {
	repo := newFileRepo(t)
	events := &MockEventPublisher{}
	service := NewBookingService(repo, observability.Discard(), WithEvents(events), WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()
	userID := idhash.UserID("Alice", "a@x.com")

	events.On("PublishBooking", ctx, kafka.EventBookingCreated, mock.MatchedBy(func(b domain.Booking) bool {
		return b.UserID == userID && b.FlightID == "F1"
	})).Return(nil).Once()

	result := service.CreateBooking(ctx, aliceInput())

	assert.Equal(t, domain.BookingResult{
		UserID:   userID,
		FlightID: "F1",
		Status:   domain.BookingStatusPending,
		Message:  domain.CompletedMessage,
	}, result)

	stored := repo.ReadAll(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, domain.Booking{
		UserID:         userID,
		FlightID:       "F1",
		PassengerName:  "Alice",
		PassengerEmail: "a@x.com",
		Status:         domain.BookingStatusPending,
		Amount:         "0.00",
		CreatedAt:      "2025-11-03T14:05:09",
	}, stored[0])
	events.AssertExpectations(t)
}

func TestBookingService_CreateBooking_Idempotent(t *testing.T) {
	repo := newFileRepo(t)
	events := &MockEventPublisher{}
	service := NewBookingService(repo, observability.Discard(), WithEvents(events))
	ctx := context.Background()

	events.On("PublishBooking", ctx, kafka.EventBookingCreated, mock.Anything).Return(nil).Once()

	first := service.CreateBooking(ctx, aliceInput())
	second := service.CreateBooking(ctx, aliceInput())

	assert.Equal(t, first, second)
	assert.Equal(t, domain.BookingStatusPending, second.Status)
	assert.Len(t, repo.ReadAll(ctx), 1)
	events.AssertNumberOfCalls(t, "PublishBooking", 1)
}

func TestBookingService_CreateBooking_ExistingConfirmedUnchanged(t *testing.T) {
	repo := newFileRepo(t)
	service := NewBookingService(repo, observability.Discard())
	ctx := context.Background()
	userID := idhash.UserID("Alice", "a@x.com")

	require.NoError(t, repo.Insert(ctx, domain.Booking{
		UserID:    userID,
		FlightID:  "F1",
		Status:    domain.BookingStatusConfirmed,
		Amount:    "0.00",
		CreatedAt: "2025-01-01T00:00:00",
	}))

	result := service.CreateBooking(ctx, aliceInput())

	assert.Equal(t, domain.BookingStatusConfirmed, result.Status)
	assert.Equal(t, domain.CompletedMessage, result.Message)
	assert.Len(t, repo.ReadAll(ctx), 1)
}

func TestBookingService_CreateBooking_SamePassengerDifferentFlights(t *testing.T) {
	repo := newFileRepo(t)
	service := NewBookingService(repo, observability.Discard())
	ctx := context.Background()

	first := service.CreateBooking(ctx, aliceInput())
	other := aliceInput()
	other.FlightID = "F2"
	second := service.CreateBooking(ctx, other)

	assert.Equal(t, first.UserID, second.UserID)
	assert.Len(t, repo.ReadAll(ctx), 2)
}

func TestBookingService_CreateBooking_StoreFailureSwallowed(t *testing.T) {
	repo := &MockBookingRepository{}
	events := &MockEventPublisher{}
	service := NewBookingService(repo, observability.Discard(), WithEvents(events))
	ctx := context.Background()
	userID := idhash.UserID("Alice", "a@x.com")

	repo.On("Find", ctx, userID, "F1").Return(nil, false)
	repo.On("Insert", ctx, mock.Anything).Return(errors.New("disk full"))

	result := service.CreateBooking(ctx, aliceInput())

	assert.Equal(t, domain.BookingStatusPending, result.Status)
	assert.Equal(t, domain.CompletedMessage, result.Message)
	events.AssertNotCalled(t, "PublishBooking", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestBookingService_CreateBooking_PublishFailureIgnored(t *testing.T) {
	repo := newFileRepo(t)
	events := &MockEventPublisher{}
	service := NewBookingService(repo, observability.Discard(), WithEvents(events))
	ctx := context.Background()

	events.On("PublishBooking", ctx, kafka.EventBookingCreated, mock.Anything).Return(errors.New("broker down"))

	result := service.CreateBooking(ctx, aliceInput())

	assert.Equal(t, domain.BookingStatusPending, result.Status)
	assert.Len(t, repo.ReadAll(ctx), 1)
}

func TestBookingService_CreateBooking_ConcurrentSameKey(t *testing.T) {
	repo := newFileRepo(t)
	service := NewBookingService(repo, observability.Discard())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			service.CreateBooking(ctx, aliceInput())
		}()
	}
	wg.Wait()

	assert.Len(t, repo.ReadAll(ctx), 1)
}

// stallingPublisher blocks the first publish until release is closed.
type stallingPublisher struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newStallingPublisher() *stallingPublisher {
	return &stallingPublisher{started: make(chan struct{}), release: make(chan struct{})}
}

func (p *stallingPublisher) PublishBooking(ctx context.Context, _ string, _ domain.Booking) error {
	first := false
	p.once.Do(func() { first = true })
	if first {
		close(p.started)
		<-p.release
	}
	return nil
}

func TestBookingService_CreateBooking_SlowPublishDoesNotHoldStore(t *testing.T) {
	repo := newFileRepo(t)
	events := newStallingPublisher()
	lock := &sync.Mutex{}
	service := NewBookingService(repo, observability.Discard(), WithEvents(events), WithLock(lock))
	ctx := context.Background()

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		service.CreateBooking(ctx, aliceInput())
	}()
	<-events.started

	secondDone := make(chan domain.BookingResult, 1)
	go func() {
		secondDone <- service.CreateBooking(ctx, CreateBookingInput{FlightID: "F9", PassengerName: "Bob", PassengerEmail: "b@x.com"})
	}()

	select {
	case result := <-secondDone:
		assert.Equal(t, domain.BookingStatusPending, result.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("booking blocked behind a pending event publish")
	}

	close(events.release)
	<-firstDone
	assert.Len(t, repo.ReadAll(ctx), 2)
}
