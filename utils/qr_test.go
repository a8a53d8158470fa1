package utils

import (
	"bytes"
	"image/png"
	"testing"
)

func TestGenerateQRCode(t *testing.T) {
	data, err := GenerateQRCode("TKT-0A1B2C3D4E|Ana", 128)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("size = %v", b)
	}
}

func TestGenerateQRCodeRejectsEmptyContent(t *testing.T) {
	if _, err := GenerateQRCode("", 128); err == nil {
		t.Fatal("expected error")
	}
}
