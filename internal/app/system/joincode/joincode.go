// Package joincode generates the short human-typeable codes used for
// direct group entry. Codes are uppercase alphanumeric with the easily
// confused characters (0/O, 1/I) removed. Uniqueness is not guaranteed
// here; callers insert against a unique index and regenerate on
// collision.
package joincode

import (
	"crypto/rand"
	"fmt"
)

// Alphabet excludes 0, O, 1, and I.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultLength is the code length used when config leaves it unset.
const DefaultLength = 6

// New returns a random code of n characters (DefaultLength if n < 4;
// shorter codes collide too often to be worth retrying).
func New(n int) (string, error) {
	if n < 4 {
		n = DefaultLength
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("joincode: %w", err)
	}
	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(buf), nil
}
