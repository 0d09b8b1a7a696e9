package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a registration password with the
// configured cost. The auth service is the only caller; repositories
// and handlers only ever see the resulting hash.
func HashPassword(plain string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
