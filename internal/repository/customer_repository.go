package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Gladwin-7/bike-rental-system/internal/model"
	"github.com/Gladwin-7/bike-rental-system/internal/utils"
)

type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

// Create hashes the password and inserts the customer, returning the
// generated ID. A duplicate mobile or email maps to ErrCustomerExists.
func (r *CustomerRepo) Create(ctx context.Context, name, mobile, email, address, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers (name, mobile, email, address, password) VALUES (?,?,?,?,?)",
		name, mobile, email, address, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrCustomerExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a customer by normalized email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (model.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var c model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT customer_id,name,mobile,email,address,password,created_at FROM customers WHERE email=? LIMIT 1",
		email).Scan(&c.ID, &c.Name, &c.Mobile, &c.Email, &c.Address, &c.PasswordHash, &c.CreatedAt)
	return c, err
}

// GetByID fetches a customer by id.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	var c model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT customer_id,name,mobile,email,address,password,created_at FROM customers WHERE customer_id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Mobile, &c.Email, &c.Address, &c.PasswordHash, &c.CreatedAt)
	return c, err
}
