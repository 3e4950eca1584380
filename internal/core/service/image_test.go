package service

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

func testJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestSniffImage_AcceptsDeclaredTypes(t *testing.T) {
	mime, err := sniffImage(testPNG(t), "image/png")
	if err != nil {
		t.Fatalf("png rejected: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("unexpected mime: %q", mime)
	}

	mime, err = sniffImage(testJPEG(t), "image/jpeg")
	if err != nil {
		t.Fatalf("jpeg rejected: %v", err)
	}
	if mime != "image/jpeg" {
		t.Fatalf("unexpected mime: %q", mime)
	}
}

func TestSniffImage_SniffsWhenDeclarationMissing(t *testing.T) {
	mime, err := sniffImage(testPNG(t), "")
	if err != nil {
		t.Fatalf("undeclared png rejected: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("expected sniffed png, got %q", mime)
	}

	// A bogus declared type falls back to content sniffing too.
	if _, err := sniffImage(testJPEG(t), "application/octet-stream"); err != nil {
		t.Fatalf("jpeg with bogus declaration rejected: %v", err)
	}
}

func TestSniffImage_RejectsNonImagePayloads(t *testing.T) {
	if _, err := sniffImage([]byte("%PDF-1.4 not an image"), "application/pdf"); err != domain.ErrCorruptImage {
		t.Fatalf("expected ErrCorruptImage for pdf, got %v", err)
	}
	if _, err := sniffImage([]byte("plain text"), ""); err != domain.ErrCorruptImage {
		t.Fatalf("expected ErrCorruptImage for text, got %v", err)
	}
}

func TestSniffImage_RejectsTruncatedImage(t *testing.T) {
	// A valid PNG header with a mangled body must not reach the model.
	data := testPNG(t)
	truncated := data[:12]
	if _, err := sniffImage(truncated, "image/png"); err != domain.ErrCorruptImage {
		t.Fatalf("expected ErrCorruptImage for truncated png, got %v", err)
	}
}
