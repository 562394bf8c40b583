package utils

import "golang.org/x/crypto/bcrypt"

// HashSecret is used by the bootstrap CLI to produce ADMIN_KEY_HASH.
func HashSecret(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(b), err
}

func CheckSecret(hash, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}
