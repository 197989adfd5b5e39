package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

var imageExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/bmp":  ".bmp",
	"image/webp": ".webp",
}

// DecodeImageDataURL decodes a "data:image/...;base64," camera capture and
// returns its bytes and a file extension (.jpg when the type is unknown).
func DecodeImageDataURL(s string) ([]byte, string, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, "", errors.New("invalid image format")
	}
	comma := strings.Index(s, ",")
	if comma < 0 {
		return nil, "", errors.New("invalid data url")
	}
	meta := strings.TrimPrefix(s[:comma], "data:")
	mime := strings.TrimSuffix(meta, ";base64")
	ext, ok := imageExts[strings.ToLower(mime)]
	if !ok {
		ext = ".jpg"
	}
	data, err := base64.StdEncoding.DecodeString(s[comma+1:])
	if err != nil {
		return nil, "", err
	}
	return data, ext, nil
}
