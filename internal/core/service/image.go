package service

import (
	"bytes"
	"image"
	"net/http"
	"strings"

	// Register the raster formats the upload surface accepts.
	_ "image/jpeg"
	_ "image/png"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

// sniffImage validates an uploaded payload and returns its MIME type. The
// declared type is trusted only when it names an accepted format; otherwise
// the content is sniffed. A payload that does not decode as JPEG or PNG is
// rejected with domain.ErrCorruptImage before any model call is made.
func sniffImage(data []byte, declaredMIME string) (string, error) {
	mime := strings.ToLower(strings.TrimSpace(declaredMIME))
	if mime != "image/jpeg" && mime != "image/png" {
		mime = http.DetectContentType(data)
	}
	if mime != "image/jpeg" && mime != "image/png" {
		return "", domain.ErrCorruptImage
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", domain.ErrCorruptImage
	}
	return mime, nil
}
