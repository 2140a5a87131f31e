package utils

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/skip2/go-qrcode"
)

// TrackingQR encodes the order-tracking URL as a base64 PNG ready for an
// <img src="..."> in the confirmation mail.
func TrackingQR(orderID string) (string, error) {
	base := os.Getenv("STOREFRONT_URL")
	if base == "" {
		base = "https://jungleetoys.co.uk"
	}

	url := fmt.Sprintf("%s/orders/%s/track", base, orderID)

	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
