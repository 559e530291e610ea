package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// BcryptCost is the work factor used for new credentials
var BcryptCost = bcrypt.DefaultCost

// HashPassword turns a raw password into a salted one-way credential
func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether raw matches the stored credential
func CheckPassword(raw, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(raw)) == nil
}
