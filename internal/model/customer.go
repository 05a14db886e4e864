package model

import "time"

// Customer represents a registered customer as stored in the
// `customers` table. Email and mobile are unique across customers.
// The password column always holds a bcrypt hash, never plaintext.
//
// Fields:
//  ID           – primary key identifier (customers.customer_id).
//  Name         – display name used on dashboards.
//  Mobile       – unique mobile number.
//  Email        – unique email address, used as the login identifier.
//  Address      – postal address collected at registration.
//  PasswordHash – bcrypt hash of the password.
//  CreatedAt    – timestamp of registration.
type Customer struct {
	ID           uint64    // customers.customer_id
	Name         string    // customers.name
	Mobile       string    // customers.mobile
	Email        string    // customers.email
	Address      string    // customers.address
	PasswordHash string    // customers.password
	CreatedAt    time.Time // customers.created_at
}
