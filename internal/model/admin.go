package model

// Admin models a row in the `admins` table. Admin accounts are seeded
// directly in the database; the API never creates them.
type Admin struct {
	ID           uint64 // admins.admin_id
	Username     string // admins.username
	PasswordHash string // admins.password
}
