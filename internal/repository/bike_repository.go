package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Gladwin-7/bike-rental-system/internal/model"
)

// BikeRepo provides CRUD operations for the bikes table. Mutations
// that participate in the rental transaction are exposed as ...Tx
// methods taking an *sql.Tx; the caller owns commit and rollback.
type BikeRepo struct {
	db *sql.DB
}

// NewBikeRepo returns a BikeRepo bound to the given database.
func NewBikeRepo(db *sql.DB) *BikeRepo { return &BikeRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *BikeRepo) DB() *sql.DB { return r.db }

// Create inserts a bike with status Available and returns its ID. A
// duplicate registration number maps to ErrDuplicateRegistration.
func (r *BikeRepo) Create(ctx context.Context, registration, bikeModel, bikeType string, pricePerHour float64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO bikes (registration_number, model, type, price_per_hour, status) VALUES (?, ?, ?, ?, 'Available')",
		registration, bikeModel, bikeType, pricePerHour)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDuplicateRegistration
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListAvailable returns bikes that can currently be rented. Status is
// not selected; the projection matches what the customer dashboard
// renders.
func (r *BikeRepo) ListAvailable(ctx context.Context) ([]model.Bike, error) {
	const q = `SELECT bike_id, registration_number, model, type, price_per_hour
	           FROM bikes WHERE status = 'Available' ORDER BY bike_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bikes := make([]model.Bike, 0)
	for rows.Next() {
		var b model.Bike
		if err := rows.Scan(&b.ID, &b.RegistrationNumber, &b.Model, &b.Type, &b.PricePerHour); err != nil {
			return nil, err
		}
		bikes = append(bikes, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bikes, nil
}

// ListAll returns every bike including its status, for the admin view.
func (r *BikeRepo) ListAll(ctx context.Context) ([]model.Bike, error) {
	const q = `SELECT bike_id, registration_number, model, type, price_per_hour, status
	           FROM bikes ORDER BY bike_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bikes := make([]model.Bike, 0)
	for rows.Next() {
		var b model.Bike
		if err := rows.Scan(&b.ID, &b.RegistrationNumber, &b.Model, &b.Type, &b.PricePerHour, &b.Status); err != nil {
			return nil, err
		}
		bikes = append(bikes, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bikes, nil
}

// LockAvailableTx takes an exclusive row lock on the bike and returns
// its hourly price, filtered to status Available. The lock is held
// until the transaction ends, so of two concurrent rent attempts on
// the same bike exactly one observes the Available row. A missing or
// already rented bike maps to ErrBikeUnavailable.
func (r *BikeRepo) LockAvailableTx(ctx context.Context, tx *sql.Tx, bikeID uint64) (float64, error) {
	const q = `SELECT price_per_hour FROM bikes WHERE bike_id = ? AND status = 'Available' FOR UPDATE`
	var price float64
	if err := tx.QueryRowContext(ctx, q, bikeID).Scan(&price); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrBikeUnavailable
		}
		return 0, err
	}
	return price, nil
}

// UpdateStatusTx flips the bike's status within the transaction.
func (r *BikeRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bikeID uint64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE bikes SET status = ? WHERE bike_id = ?`, status, bikeID)
	return err
}

// DeleteTx removes the bike row within the transaction. The caller
// must have verified inside the same transaction that no rental
// references the bike.
func (r *BikeRepo) DeleteTx(ctx context.Context, tx *sql.Tx, bikeID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM bikes WHERE bike_id = ?`, bikeID)
	return err
}
