package verification

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// CodeLength is the number of digits in an emailed verification code.
const CodeLength = 4

var ten = big.NewInt(10)

// GenerateCode returns a numeric code with each digit drawn uniformly
// from 0-9, leading zeros included.
func GenerateCode() string {
	var b strings.Builder
	b.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; there is no meaningful recovery.
			panic(err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String()
}
