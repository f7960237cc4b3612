package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generator defines the contract for one-time code generation.
type Generator interface {
	// Generate returns a new numeric code.
	Generate() (string, error)
}

// Numeric generates decimal codes of a fixed length using crypto/rand.
type Numeric struct {
	length int
	max    *big.Int
}

// NewNumeric constructs a Numeric generator.
//
// If length is outside 4..10, it falls back to the common 6 digits.
func NewNumeric(length int) *Numeric {
	if length < 4 || length > 10 {
		length = 6
	}

	max := big.NewInt(10)
	max.Exp(max, big.NewInt(int64(length)), nil)

	return &Numeric{length: length, max: max}
}

// Length returns the configured code length.
func (n *Numeric) Length() int {
	return n.length
}

// Generate returns a zero-padded code uniform over [0, 10^length).
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(rand.Reader, n.max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", n.length, v), nil
}
