package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const bookingsSchema = `CREATE TABLE IF NOT EXISTS bookings (
	user_id         TEXT NOT NULL,
	flight_id       TEXT NOT NULL,
	passenger_name  TEXT NOT NULL,
	passenger_email TEXT NOT NULL,
	status          TEXT NOT NULL,
	amount          TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	position        BIGSERIAL,
	PRIMARY KEY (user_id, flight_id)
)`

const bookingColumns = `user_id, flight_id, passenger_name, passenger_email, status, amount, created_at`

// PGBookingRepository stores bookings in postgres. The primary key enforces
// (user id, flight id) uniqueness on insert as well.
type PGBookingRepository struct {
	db  *pgxpool.Pool
	log logrus.FieldLogger
}

func NewBookingRepository(db *pgxpool.Pool, log logrus.FieldLogger) *PGBookingRepository {
	return &PGBookingRepository{db: db, log: log.WithField("component", "booking_store")}
}

// Migrate creates the bookings table if needed.
func (r *PGBookingRepository) Migrate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, bookingsSchema)
	return errors.Wrap(err, "create bookings table")
}

func (r *PGBookingRepository) ReadAll(ctx context.Context) []domain.Booking {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY position`)
	if err != nil {
		r.log.WithError(err).Warn("query bookings")
		return []domain.Booking{}
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			r.log.WithError(err).Warn("scan booking")
			return []domain.Booking{}
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		r.log.WithError(err).Warn("iterate bookings")
		return []domain.Booking{}
	}
	return bookings
}

func (r *PGBookingRepository) WriteAll(ctx context.Context, bookings []domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings`); err != nil {
		return errors.Wrap(err, "clear bookings")
	}
	for _, b := range bookings {
		if err := insertBooking(ctx, tx, b); err != nil {
			return err
		}
	}
	return errors.Wrap(tx.Commit(ctx), "commit bookings")
}

func (r *PGBookingRepository) Find(ctx context.Context, userID, flightID string) (*domain.Booking, bool) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 AND flight_id=$2`, userID, flightID)
	b, err := scanBooking(row)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.log.WithError(err).Warn("find booking")
		}
		return nil, false
	}
	return &b, true
}

func (r *PGBookingRepository) Insert(ctx context.Context, booking domain.Booking) error {
	return insertBooking(ctx, r.db, booking)
}

// Replace updates the row with the booking's key; a missing key is a no-op.
func (r *PGBookingRepository) Replace(ctx context.Context, b domain.Booking) error {
	_, err := r.db.Exec(ctx, `UPDATE bookings
		SET passenger_name=$3, passenger_email=$4, status=$5, amount=$6, created_at=$7
		WHERE user_id=$1 AND flight_id=$2`,
		b.UserID, b.FlightID, b.PassengerName, b.PassengerEmail, b.Status, b.Amount, b.CreatedAt)
	return errors.Wrap(err, "update booking")
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertBooking(ctx context.Context, db execer, b domain.Booking) error {
	_, err := db.Exec(ctx, `INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, flight_id) DO NOTHING`,
		b.UserID, b.FlightID, b.PassengerName, b.PassengerEmail, b.Status, b.Amount, b.CreatedAt)
	return errors.Wrap(err, "insert booking")
}

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.UserID, &b.FlightID, &b.PassengerName, &b.PassengerEmail, &b.Status, &b.Amount, &b.CreatedAt)
	return b, err
}

var _ BookingRepository = (*PGBookingRepository)(nil)
