package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt implements Hash with golang.org/x/crypto/bcrypt.
//
// The optional pepper is appended to every plaintext and must come from
// configuration, never from the database.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt returns a bcrypt hasher. A cost outside bcrypt's range falls back
// to bcrypt.DefaultCost.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost, pepper: pepper}
}

func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext+h.pepper), h.cost)
}

func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext+h.pepper)) == nil
}

func (h *Bcrypt) IsHashed(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
