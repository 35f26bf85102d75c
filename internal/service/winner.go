package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Picker draws a uniformly random index in [0, n). Injected so winner draws
// are fair in production and deterministic in tests.
type Picker func(n int) (int, error)

// CryptoPicker draws from crypto/rand so the selection cannot be predicted
// from entry order or ids.
func CryptoPicker(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("cannot pick from %d entries", n)
	}
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random index: %w", err)
	}
	return int(idx.Int64()), nil
}
