package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// RandomDigitID returns a uniform 8-digit public identifier in
// [10000000, 99999999], used for users and products. Callers must
// collision-check against existing rows and retry.
func RandomDigitID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+10000000), nil
}

// NewOrderID builds a human-readable order id of the form
// ORD-YYYYMMDD-NNNNN, where the suffix is the first five digits of a
// random UUID's integer value. Collision checking is the caller's job.
func NewOrderID(now time.Time) string {
	u := uuid.New()
	digits := new(big.Int).SetBytes(u[:]).String()
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), digits[:5])
}
