package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

const minQRSize = 64

// GenerateQRCode encodes content as a square PNG of at least minQRSize pixels.
func GenerateQRCode(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr: empty content")
	}
	size = max(size, minQRSize)
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(size)); err != nil {
		return nil, fmt.Errorf("qr: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
