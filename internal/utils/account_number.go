package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// accountNumberPrefix is the leading digit of every account number issued by
// this system; the remaining nine digits are random.
const accountNumberPrefix = "2"

// accountNumberDigits is the number of random digits following the prefix.
const accountNumberDigits = 9

// GenerateAccountNumber produces a candidate 10-digit account number.
// Uniqueness is enforced by the account store; callers retry on collision.
func GenerateAccountNumber() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < accountNumberDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%s%0*d", accountNumberPrefix, accountNumberDigits, n), nil
}
