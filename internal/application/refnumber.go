package application

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateReferenceNumber builds a visa reference like RW24015123:
// the RW prefix, two-digit year, day of year, and three random digits.
// Uniqueness is enforced by the store; callers retry on collision.
func GenerateReferenceNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("generate reference suffix: %w", err)
	}
	return fmt.Sprintf("RW%02d%03d%03d", now.Year()%100, now.YearDay(), n.Int64()), nil
}
