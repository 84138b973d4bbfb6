package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// bookingIDPrefix is the fixed prefix of every human-readable booking
// reference.
const bookingIDPrefix = "BK"

// GenerateBookingID builds a booking reference of the form
// BK + YYMMDD + 6-digit random suffix, e.g. BK260830472913. The date
// scopes the random suffix to one day, so collisions require two
// same-day draws of the same 6-digit number; a unique index on the
// bookings collection catches the residual chance and callers retry.
func GenerateBookingID(now time.Time) string {
	return bookingIDPrefix + now.Format("060102") + randomSuffix()
}

// randomSuffix draws a 6-digit number in [100000, 999999] from
// crypto/rand.
func randomSuffix() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to a time-derived suffix rather than aborting the
		// booking.
		return fmt.Sprintf("%06d", time.Now().UnixNano()%900000+100000)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
