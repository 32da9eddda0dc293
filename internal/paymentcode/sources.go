package paymentcode

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"moneroreq/internal/validation"
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// RandomSource fills p with random bytes.
type RandomSource interface {
	Read(p []byte) (int, error)
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// CryptoRandom reads from the operating system's CSPRNG.
type CryptoRandom struct{}

func (CryptoRandom) Read(p []byte) (int, error) { return rand.Read(p) }

// NewPaymentID returns 16 uniformly distributed lowercase hex characters.
func NewPaymentID(src RandomSource) (string, error) {
	buf := make([]byte, validation.PaymentIDLength)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = validation.PaymentIDAlphabet[b&0x0f]
	}
	return string(buf), nil
}
