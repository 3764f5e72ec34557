// Package imaging prepares uploaded crop photos for analysis: it
// validates the payload, bounds its dimensions and re-encodes it as
// JPEG so every image reaching the vision model has a predictable
// shape and size.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
)

// MaxDimension bounds the longest side of a normalized image, in pixels.
const MaxDimension = 1024

// jpegQuality is the re-encode quality for normalized images.
const jpegQuality = 85

// ErrInvalidImage reports a payload that is not a decodable JPEG or PNG.
var ErrInvalidImage = errors.New("imaging: invalid image format")

// StripDataURL removes a data URL header ("data:image/...;base64,")
// from a base64 payload, leaving the raw encoding untouched otherwise.
func StripDataURL(encoded string) string {
	if idx := strings.Index(encoded, "base64,"); idx >= 0 {
		return encoded[idx+len("base64,"):]
	}
	return encoded
}

// Normalize decodes a base64 JPEG or PNG, scales it down so neither
// side exceeds MaxDimension, and returns it re-encoded as base64 JPEG.
// Images already within bounds are still re-encoded, so the output is
// always JPEG.
func Normalize(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(StripDataURL(encoded))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > MaxDimension || height > MaxDimension {
		width, height = fitWithin(width, height, MaxDimension)
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		src = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("imaging: failed to encode image: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fitWithin shrinks (w, h) proportionally so both fit inside max,
// never returning a dimension below 1.
func fitWithin(w, h, max int) (int, int) {
	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// DataURL wraps a base64 JPEG payload as a data URL for transport to
// vision APIs.
func DataURL(encoded string) string {
	return "data:image/jpeg;base64," + encoded
}
