package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword produces the bcrypt hash stored in the password columns
// of customers and admins. The cost is passed in so registration uses
// the configured BCRYPT_COST while callers with other needs can pick
// their own.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash. Both
// login paths rely on it; a malformed hash reads as a mismatch rather
// than an error, which keeps the 401 handling uniform.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
