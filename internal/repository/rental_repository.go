package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Gladwin-7/bike-rental-system/internal/model"
)

// RentalRepo provides operations for the rentals table. Rental rows
// exist only while a rental is active: Rent inserts one and Return
// deletes it again, each inside the caller's transaction together with
// the bike status flip.
type RentalRepo struct {
	db *sql.DB
}

// NewRentalRepo returns a RentalRepo bound to the given database.
func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *RentalRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a rental within the scope of an existing
// transaction and populates the generated ID on the provided record.
// The caller must commit or rollback the transaction.
func (r *RentalRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *model.Rental) error {
	const q = `INSERT INTO rentals (customer_id, bike_id, start_datetime, end_datetime, total_price) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, rec.CustomerID, rec.BikeID, rec.StartDatetime, rec.EndDatetime, rec.TotalPrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// ExistsForBikeTx verifies inside the transaction that a rental row
// matches both IDs. It returns ErrRentalNotFound when no row matches,
// which the return handler maps to a 404.
func (r *RentalRepo) ExistsForBikeTx(ctx context.Context, tx *sql.Tx, rentalID, bikeID uint64) error {
	const q = `SELECT rental_id FROM rentals WHERE rental_id = ? AND bike_id = ?`
	var id uint64
	if err := tx.QueryRowContext(ctx, q, rentalID, bikeID).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return ErrRentalNotFound
		}
		return err
	}
	return nil
}

// DeleteTx removes the rental row within the transaction.
func (r *RentalRepo) DeleteTx(ctx context.Context, tx *sql.Tx, rentalID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM rentals WHERE rental_id = ?`, rentalID)
	return err
}

// CountByBikeTx counts rental rows referencing the bike inside the
// transaction. DeleteBike runs this check and the delete in one
// transaction so a rental created in between cannot slip through.
func (r *RentalRepo) CountByBikeTx(ctx context.Context, tx *sql.Tx, bikeID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM rentals WHERE bike_id = ?`, bikeID).Scan(&n)
	return n, err
}

// CustomerRental is the projection returned to a customer listing
// their active rentals: the rental joined with its bike.
type CustomerRental struct {
	RentalID           uint64    `json:"rental_id"`
	BikeID             uint64    `json:"bike_id"`
	Model              string    `json:"model"`
	Type               string    `json:"type"`
	RegistrationNumber string    `json:"registration_number"`
	StartDatetime      time.Time `json:"start_datetime"`
	EndDatetime        time.Time `json:"end_datetime"`
	TotalPrice         float64   `json:"total_price"`
	PricePerHour       float64   `json:"price_per_hour"`
}

// ListByCustomer returns the customer's active rentals joined with
// bike details. When the customer has none, an empty slice is
// returned.
func (r *RentalRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]CustomerRental, error) {
	const q = `SELECT r.rental_id, b.bike_id, b.model, b.type, b.registration_number,
	                  r.start_datetime, r.end_datetime, r.total_price, b.price_per_hour
	           FROM rentals r
	           JOIN bikes b ON r.bike_id = b.bike_id
	           WHERE r.customer_id = ? AND b.status = 'Rented'`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rentals := make([]CustomerRental, 0)
	for rows.Next() {
		var cr CustomerRental
		if err := rows.Scan(&cr.RentalID, &cr.BikeID, &cr.Model, &cr.Type, &cr.RegistrationNumber,
			&cr.StartDatetime, &cr.EndDatetime, &cr.TotalPrice, &cr.PricePerHour); err != nil {
			return nil, err
		}
		rentals = append(rentals, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rentals, nil
}

// RentedBike is the projection for the admin view: every active rental
// joined with its bike and the renting customer's name.
type RentedBike struct {
	RentalID           uint64    `json:"rental_id"`
	CustomerName       string    `json:"customer_name"`
	Model              string    `json:"model"`
	RegistrationNumber string    `json:"registration_number"`
	Type               string    `json:"type"`
	StartDatetime      time.Time `json:"start_datetime"`
	EndDatetime        time.Time `json:"end_datetime"`
	TotalPrice         float64   `json:"total_price"`
}

// ListActive returns all active rentals with customer and bike details
// for the admin dashboard.
func (r *RentalRepo) ListActive(ctx context.Context) ([]RentedBike, error) {
	const q = `SELECT r.rental_id, c.name AS customer_name, b.model,
	                  b.registration_number, b.type, r.start_datetime,
	                  r.end_datetime, r.total_price
	           FROM rentals r
	           JOIN customers c ON r.customer_id = c.customer_id
	           JOIN bikes b ON r.bike_id = b.bike_id
	           WHERE b.status = 'Rented'`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rentals := make([]RentedBike, 0)
	for rows.Next() {
		var rb RentedBike
		if err := rows.Scan(&rb.RentalID, &rb.CustomerName, &rb.Model, &rb.RegistrationNumber,
			&rb.Type, &rb.StartDatetime, &rb.EndDatetime, &rb.TotalPrice); err != nil {
			return nil, err
		}
		rentals = append(rentals, rb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rentals, nil
}
