package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tdea-viajes/travelbooking/internal/domain"
)

type TravelRepository interface {
	List(ctx context.Context) ([]domain.Travel, error)
	GetByID(ctx context.Context, id int64) (*domain.Travel, error)
	Create(ctx context.Context, travel *domain.Travel) error
	Update(ctx context.Context, travel *domain.Travel) error
	Delete(ctx context.Context, id int64) error
	Filter(ctx context.Context, filter domain.TravelFilter) ([]domain.Travel, error)
}

type PGTravelRepository struct {
	db *pgxpool.Pool
}

func NewTravelRepository(db *pgxpool.Pool) TravelRepository {
	return &PGTravelRepository{db: db}
}

const travelColumns = `id, destination, departure_date, return_date, price, COALESCE(itinerary, '')`

func (r *PGTravelRepository) List(ctx context.Context) ([]domain.Travel, error) {
	rows, err := r.db.Query(ctx, `SELECT `+travelColumns+` FROM travels ORDER BY departure_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTravels(rows)
}

func (r *PGTravelRepository) GetByID(ctx context.Context, id int64) (*domain.Travel, error) {
	row := r.db.QueryRow(ctx, `SELECT `+travelColumns+` FROM travels WHERE id=$1`, id)
	var t domain.Travel
	if err := row.Scan(&t.ID, &t.Destination, &t.DepartureDate, &t.ReturnDate, &t.Price, &t.Itinerary); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGTravelRepository) Create(ctx context.Context, travel *domain.Travel) error {
	return r.db.QueryRow(ctx, `INSERT INTO travels (destination, departure_date, return_date, price, itinerary)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		travel.Destination, travel.DepartureDate, travel.ReturnDate, travel.Price, travel.Itinerary).
		Scan(&travel.ID)
}

func (r *PGTravelRepository) Update(ctx context.Context, travel *domain.Travel) error {
	cmd, err := r.db.Exec(ctx, `UPDATE travels SET destination=$1, departure_date=$2, return_date=$3, price=$4, itinerary=$5 WHERE id=$6`,
		travel.Destination, travel.DepartureDate, travel.ReturnDate, travel.Price, travel.Itinerary, travel.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGTravelRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM travels WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGTravelRepository) Filter(ctx context.Context, filter domain.TravelFilter) ([]domain.Travel, error) {
	query := `SELECT ` + travelColumns + ` FROM travels WHERE 1=1`
	args := []any{}

	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += fmt.Sprintf(` AND destination ILIKE $%d`, len(args))
	}
	if !filter.DepartureFrom.IsZero() {
		args = append(args, filter.DepartureFrom)
		query += fmt.Sprintf(` AND departure_date >= $%d`, len(args))
	}
	if !filter.ReturnTo.IsZero() {
		args = append(args, filter.ReturnTo)
		query += fmt.Sprintf(` AND return_date <= $%d`, len(args))
	}
	query += ` ORDER BY departure_date`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTravels(rows)
}

func scanTravels(rows pgx.Rows) ([]domain.Travel, error) {
	travels := make([]domain.Travel, 0)
	for rows.Next() {
		var t domain.Travel
		if err := rows.Scan(&t.ID, &t.Destination, &t.DepartureDate, &t.ReturnDate, &t.Price, &t.Itinerary); err != nil {
			return nil, err
		}
		travels = append(travels, t)
	}
	return travels, rows.Err()
}

var _ TravelRepository = (*PGTravelRepository)(nil)
