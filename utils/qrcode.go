package utils

import (
	"bytes"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// GenerateBookingQRCode renders the booking reference as a PNG QR code.
// The front desk scans it to pull up the booking at document pickup.
func GenerateBookingQRCode(bookingID string) ([]byte, error) {
	qrCode, err := qr.Encode(bookingID, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}

	qrCode, err = barcode.Scale(qrCode, 300, 300)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
