package rand

import (
	"crypto/rand"
	"math/big"
)

var digits = []rune("1234567890")

// Digits generates a random string of the specified length using decimal digits.
func Digits(length int) string {
	b := make([]rune, length)
	for i := range b {
		idx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		b[i] = digits[idx.Int64()]
	}
	return string(b)
}
