package share

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the edge length in pixels for exported QR images.
const qrSize = 256

// QRText renders the URL as a terminal block-art QR code.
func QRText(url string) (string, error) {
	qr, err := qrcode.New(url, qrcode.High)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return qr.ToSmallString(false), nil
}

// WriteQRPNG writes the URL's QR code as a PNG image for printed
// distribution alongside the invoice.
func WriteQRPNG(url, path string) error {
	if err := qrcode.WriteFile(url, qrcode.High, qrSize, path); err != nil {
		return fmt.Errorf("write qr image: %w", err)
	}
	return nil
}
