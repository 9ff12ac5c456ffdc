// Package images optimizes uploaded marketing images and stores them in
// S3-compatible object storage behind a CDN.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage marks uploads that could not be decoded as jpeg, png,
// gif or webp.
var ErrInvalidImage = errors.New("invalid image")

const (
	maxWidth    = 1920
	maxHeight   = 1080
	jpegQuality = 80
)

// Optimize decodes an uploaded image (jpeg, png, gif or webp), scales it
// down to fit within 1920x1080 without enlarging smaller images, and
// re-encodes it as JPEG for delivery.
func Optimize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	targetWidth, targetHeight := fitWithin(width, height, maxWidth, maxHeight)
	if targetWidth != width || targetHeight != height {
		scaled := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		src = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin returns dimensions scaled to fit inside maxW x maxH while
// preserving aspect ratio. Images already inside the box are untouched.
func fitWithin(width, height, maxW, maxH int) (int, int) {
	if width <= maxW && height <= maxH {
		return width, height
	}
	scaleW := float64(maxW) / float64(width)
	scaleH := float64(maxH) / float64(height)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	targetWidth := int(float64(width) * scale)
	targetHeight := int(float64(height) * scale)
	if targetWidth < 1 {
		targetWidth = 1
	}
	if targetHeight < 1 {
		targetHeight = 1
	}
	return targetWidth, targetHeight
}
