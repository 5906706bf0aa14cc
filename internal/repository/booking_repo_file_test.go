package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileRepo(t *testing.T) (*FileBookingRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "bookings.json")
	return NewFileBookingRepository(path, observability.Discard()), path
}

func pendingBooking(userID, flightID string) domain.Booking {
	return domain.Booking{
		UserID:         userID,
		FlightID:       flightID,
		PassengerName:  "John Doe",
		PassengerEmail: "john@example.com",
		Status:         domain.BookingStatusPending,
		Amount:         domain.PlaceholderAmount,
		CreatedAt:      "2025-11-20T00:00:00",
	}
}

func TestFileBookingRepository_CreatesEmptyFile(t *testing.T) {
	repo, path := newFileRepo(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Empty(t, repo.ReadAll(context.Background()))
}

func TestFileBookingRepository_ReadAll_FailOpen(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file", content: nil},
		{name: "empty file", content: strPtr("")},
		{name: "whitespace only", content: strPtr("  \n")},
		{name: "malformed json", content: strPtr("{not json")},
		{name: "json null", content: strPtr("null")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, path := newFileRepo(t)
			require.NoError(t, os.Remove(path))
			if tc.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tc.content), 0o644))
			}

			bookings := repo.ReadAll(context.Background())
			assert.NotNil(t, bookings)
			assert.Empty(t, bookings)
		})
	}
}

func TestFileBookingRepository_InsertAndFind(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, pendingBooking("user-1", "flight-1")))
	require.NoError(t, repo.Insert(ctx, pendingBooking("user-2", "flight-2")))

	assert.Len(t, repo.ReadAll(ctx), 2)

	found, ok := repo.Find(ctx, "user-1", "flight-1")
	require.True(t, ok)
	assert.Equal(t, pendingBooking("user-1", "flight-1"), *found)

	_, ok = repo.Find(ctx, "user-1", "flight-2")
	assert.False(t, ok)
	_, ok = repo.Find(ctx, "user-9", "flight-1")
	assert.False(t, ok)
}

func TestFileBookingRepository_Find_FirstMatch(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	first := pendingBooking("user-1", "flight-1")
	second := pendingBooking("user-1", "flight-1")
	second.PassengerName = "Duplicate"
	require.NoError(t, repo.WriteAll(ctx, []domain.Booking{first, second}))

	found, ok := repo.Find(ctx, "user-1", "flight-1")
	require.True(t, ok)
	assert.Equal(t, "John Doe", found.PassengerName)
}

func TestFileBookingRepository_RoundTrip(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()
	b := pendingBooking("user-rt", "flight-rt")

	all := append(repo.ReadAll(ctx), b)
	require.NoError(t, repo.WriteAll(ctx, all))

	found, ok := repo.Find(ctx, b.UserID, b.FlightID)
	require.True(t, ok)
	assert.Equal(t, b, *found)
}

func TestFileBookingRepository_Replace(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, pendingBooking("user-1", "flight-1")))
	require.NoError(t, repo.Insert(ctx, pendingBooking("user-2", "flight-2")))

	updated := pendingBooking("user-2", "flight-2")
	updated.Status = domain.BookingStatusConfirmed
	require.NoError(t, repo.Replace(ctx, updated))

	all := repo.ReadAll(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, domain.BookingStatusPending, all[0].Status)
	assert.Equal(t, domain.BookingStatusConfirmed, all[1].Status)
}

func TestFileBookingRepository_Replace_MissingKeyIsNoop(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, pendingBooking("user-1", "flight-1")))

	ghost := pendingBooking("user-x", "flight-x")
	ghost.Status = domain.BookingStatusConfirmed
	assert.NoError(t, repo.Replace(ctx, ghost))

	all := repo.ReadAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, pendingBooking("user-1", "flight-1"), all[0])
}

func TestFileBookingRepository_PrettyPrinted(t *testing.T) {
	repo, path := newFileRepo(t)
	require.NoError(t, repo.Insert(context.Background(), pendingBooking("user-1", "flight-1")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {\n    \"user_id\": \"user-1\",")
}

func TestFileBookingRepository_ConcurrentInserts(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Insert(ctx, pendingBooking("user", string(rune('a'+i))))
		}(i)
	}
	wg.Wait()

	assert.Len(t, repo.ReadAll(ctx), 20)
}

func strPtr(s string) *string { return &s }
