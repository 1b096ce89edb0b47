package core

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted bcrypt digest of password. Two calls with the
// same input produce different digests; compare with VerifyPassword, not
// string equality.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt digest. A
// malformed digest yields false, never an error to the caller.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
