package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// ParseRecoveryLevel maps a config level name to a QR recovery level.
func ParseRecoveryLevel(name string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(name) {
	case "low":
		return qrcode.Low, nil
	case "", "medium":
		return qrcode.Medium, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	}
	return qrcode.Medium, fmt.Errorf("unknown QR recovery level %q", name)
}

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int, level qrcode.RecoveryLevel) ([]byte, error) {
	return qrcode.Encode(text, level, size)
}

// GenerateQRImage returns an image.Image for further composition.
func GenerateQRImage(text string, size int, level qrcode.RecoveryLevel) (image.Image, error) {
	b, err := GenerateQRPNG(text, size, level)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}
