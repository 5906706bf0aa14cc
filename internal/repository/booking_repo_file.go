package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// FileBookingRepository keeps every booking in one pretty-printed JSON array.
// Each operation reads the whole file and, for mutations, rewrites it. A
// mutex serializes operations within the process; separate processes sharing
// the file are not coordinated.
type FileBookingRepository struct {
	path string
	log  logrus.FieldLogger
	mu   sync.Mutex
}

// NewFileBookingRepository creates the file with an empty array if it does
// not exist yet. Initialization failures are logged, not returned.
func NewFileBookingRepository(path string, log logrus.FieldLogger) *FileBookingRepository {
	r := &FileBookingRepository{path: path, log: log.WithField("component", "booking_store")}
	if err := r.init(); err != nil {
		r.log.WithError(err).Warn("initialize bookings file")
	}
	return r
}

func (r *FileBookingRepository) init() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "stat bookings file")
	}
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create bookings dir")
		}
	}
	return r.writeAll(nil)
}

func (r *FileBookingRepository) ReadAll(_ context.Context) []domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll()
}

func (r *FileBookingRepository) WriteAll(_ context.Context, bookings []domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeAll(bookings)
}

func (r *FileBookingRepository) Find(_ context.Context, userID, flightID string) (*domain.Booking, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return findIn(r.readAll(), userID, flightID)
}

func (r *FileBookingRepository) Insert(_ context.Context, booking domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings := r.readAll()
	bookings = append(bookings, booking)
	return r.writeAll(bookings)
}

// Replace overwrites the first record with the same key. When no record
// matches the unchanged list is still written back.
func (r *FileBookingRepository) Replace(_ context.Context, booking domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings := r.readAll()
	for i := range bookings {
		if bookings[i].Matches(booking.UserID, booking.FlightID) {
			bookings[i] = booking
			break
		}
	}
	return r.writeAll(bookings)
}

func (r *FileBookingRepository) readAll() []domain.Booking {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.WithError(err).Warn("read bookings file")
		}
		return []domain.Booking{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Booking{}
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		r.log.WithError(err).Warn("decode bookings file")
		return []domain.Booking{}
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings
}

func (r *FileBookingRepository) writeAll(bookings []domain.Booking) error {
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode bookings")
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".bookings-*.json")
	if err != nil {
		return errors.Wrap(err, "create temp bookings file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp bookings file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp bookings file")
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return errors.Wrapf(err, "replace %s", r.path)
	}
	return nil
}

var _ BookingRepository = (*FileBookingRepository)(nil)
