package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the credential hash stored when an account is
// registered. Cost comes from configuration so tests can pick a cheap
// setting; values outside bcrypt's supported range fall back to the
// library default.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword checks a login attempt against the stored hash. It
// reports only success or failure; the login handler maps failure to the
// same response as an unknown username.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
