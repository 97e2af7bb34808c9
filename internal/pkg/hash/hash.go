// Package hash stores and checks staff and admin passwords.
//
// Only the hash is persisted; login compares the submitted plaintext
// against it.
package hash

// Hash hashes secrets and verifies plaintext against stored hashes.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
	// IsHashed reports whether s is already a hash produced by this algorithm.
	IsHashed(s string) bool
}
