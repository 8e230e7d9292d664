package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tdea-viajes/travelbooking/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	Filter(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	MarkNoShowsBefore(ctx context.Context, deadline time.Time) ([]int64, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingSelect = `SELECT b.id, b.reference, b.booking_date, b.status,
	u.id, u.username, u.rol, u.name, u.surname, u.email, COALESCE(u.phone_number, ''), COALESCE(u.address, ''),
	t.id, t.destination, t.departure_date, t.return_date, t.price, COALESCE(t.itinerary, '')
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	JOIN travels t ON t.id = b.travel_id`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (reference, status, user_id, travel_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, booking_date`,
		booking.Reference, booking.Status, booking.User.ID, booking.Travel.ID).
		Scan(&booking.ID, &booking.BookingDate)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, bookingSelect+` WHERE b.id=$1`, id)
	b, err := scanBookingRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachPayments(ctx, []*domain.Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.query(ctx, bookingSelect+` ORDER BY b.booking_date DESC`)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.query(ctx, bookingSelect+` WHERE b.user_id=$1 ORDER BY b.booking_date DESC`, userID)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) Filter(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := bookingSelect + ` WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND b.status = $%d`, len(args))
	}
	if filter.UserEmail != "" {
		args = append(args, "%"+filter.UserEmail+"%")
		query += fmt.Sprintf(` AND u.email ILIKE $%d`, len(args))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += fmt.Sprintf(` AND t.destination ILIKE $%d`, len(args))
	}
	if !filter.DateFrom.IsZero() {
		args = append(args, filter.DateFrom)
		query += fmt.Sprintf(` AND t.departure_date >= $%d`, len(args))
	}
	if !filter.DateTo.IsZero() {
		args = append(args, filter.DateTo)
		query += fmt.Sprintf(` AND t.departure_date <= $%d`, len(args))
	}
	query += ` ORDER BY b.booking_date DESC`

	return r.query(ctx, query, args...)
}

// MarkNoShowsBefore flips bookings that are still payable after their travel
// departed to NO_SHOW and returns the affected booking ids.
func (r *PGBookingRepository) MarkNoShowsBefore(ctx context.Context, deadline time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings b SET status=$1
		FROM travels t
		WHERE t.id = b.travel_id
		  AND b.status IN ($2, $3, $4)
		  AND t.departure_date < $5
		RETURNING b.id`,
		domain.BookingStatusNoShow,
		domain.BookingStatusPending, domain.BookingStatusOnHold, domain.BookingStatusConfirmed,
		deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PGBookingRepository) query(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Booking, len(bookings))
	for i := range bookings {
		refs[i] = &bookings[i]
	}
	if err := r.attachPayments(ctx, refs); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *PGBookingRepository) attachPayments(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
		byID[b.ID] = b
		b.Payments = make([]domain.Payment, 0)
	}

	rows, err := r.db.Query(ctx, `SELECT id, amount, payment_date, payment_method, booking_id
		FROM payments WHERE booking_id = ANY($1) ORDER BY payment_date DESC`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.PaymentDate, &p.PaymentMethod, &p.BookingID); err != nil {
			return err
		}
		if b, ok := byID[p.BookingID]; ok {
			b.Payments = append(b.Payments, p)
		}
	}
	return rows.Err()
}

func scanBookingRow(row pgx.Row) (*domain.Booking, error) {
	var (
		b domain.Booking
		u domain.User
		t domain.Travel
	)
	if err := row.Scan(
		&b.ID, &b.Reference, &b.BookingDate, &b.Status,
		&u.ID, &u.Username, &u.Role, &u.Name, &u.Surname, &u.Email, &u.PhoneNumber, &u.Address,
		&t.ID, &t.Destination, &t.DepartureDate, &t.ReturnDate, &t.Price, &t.Itinerary,
	); err != nil {
		return nil, err
	}
	b.User = &u
	b.Travel = &t
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
