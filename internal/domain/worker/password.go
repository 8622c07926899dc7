package worker

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash stored for a worker credential.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func (w *Worker) CheckPassword(password string) bool {
	if w.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(w.PasswordHash), []byte(password)) == nil
}
