package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tdea-viajes/travelbooking/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
	TotalPaidByBooking(ctx context.Context, bookingID int64) (decimal.Decimal, error)
	Delete(ctx context.Context, id int64) error
	Filter(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

const paymentSelect = `SELECT p.id, p.amount, p.payment_date, p.payment_method, p.booking_id,
	u.id, u.email, t.destination
	FROM payments p
	JOIN bookings b ON b.id = p.booking_id
	JOIN users u ON u.id = b.user_id
	JOIN travels t ON t.id = b.travel_id`

func (r *PGPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.db.QueryRow(ctx, `INSERT INTO payments (amount, payment_date, payment_method, booking_id)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		payment.Amount, payment.PaymentDate, payment.PaymentMethod, payment.BookingID).
		Scan(&payment.ID)
}

func (r *PGPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, paymentSelect+` WHERE p.id=$1`, id)
	p, err := scanPaymentRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PGPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	return r.query(ctx, paymentSelect+` ORDER BY p.payment_date DESC`)
}

func (r *PGPaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	return r.query(ctx, paymentSelect+` WHERE p.booking_id=$1 ORDER BY p.payment_date DESC`, bookingID)
}

func (r *PGPaymentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return r.query(ctx, paymentSelect+` WHERE b.user_id=$1 ORDER BY p.payment_date DESC`, userID)
}

func (r *PGPaymentRepository) TotalPaidByBooking(ctx context.Context, bookingID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id=$1`, bookingID).Scan(&total)
	return total, err
}

func (r *PGPaymentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPaymentRepository) Filter(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	query := paymentSelect + ` WHERE 1=1`
	args := []any{}

	if filter.UserEmail != "" {
		args = append(args, "%"+filter.UserEmail+"%")
		query += fmt.Sprintf(` AND u.email ILIKE $%d`, len(args))
	}
	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		query += fmt.Sprintf(` AND p.payment_method = $%d`, len(args))
	}
	if filter.MinAmount != nil {
		args = append(args, *filter.MinAmount)
		query += fmt.Sprintf(` AND p.amount >= $%d`, len(args))
	}
	if filter.MaxAmount != nil {
		args = append(args, *filter.MaxAmount)
		query += fmt.Sprintf(` AND p.amount <= $%d`, len(args))
	}
	if !filter.DateFrom.IsZero() {
		args = append(args, filter.DateFrom)
		query += fmt.Sprintf(` AND p.payment_date >= $%d`, len(args))
	}
	if !filter.DateTo.IsZero() {
		args = append(args, filter.DateTo)
		query += fmt.Sprintf(` AND p.payment_date <= $%d`, len(args))
	}
	query += ` ORDER BY p.payment_date DESC`

	return r.query(ctx, query, args...)
}

func (r *PGPaymentRepository) query(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPaymentRow(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func scanPaymentRow(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.Amount, &p.PaymentDate, &p.PaymentMethod, &p.BookingID, &p.UserID, &p.UserEmail, &p.Destination); err != nil {
		return nil, err
	}
	return &p, nil
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
