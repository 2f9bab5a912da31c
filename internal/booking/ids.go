package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	bookingRefCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	bookingRefLength  = 9
)

// newBookingRef generates the ticket id printed on the QR code. Crypto-random
// so two checkouts in the same instant can never collide.
func newBookingRef() (string, error) {
	ref := make([]byte, bookingRefLength)
	for i := range ref {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingRefCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}
		ref[i] = bookingRefCharset[n.Int64()]
	}
	return "B" + string(ref), nil
}

// newPaymentID generates the opaque payment session id
func newPaymentID() string {
	return "P" + uuid.New().String()
}
