package images

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("optimized output is not a valid JPEG: %v", err)
	}
	return img
}

func TestOptimizeScalesDownLargeImages(t *testing.T) {
	out, err := Optimize(encodePNG(t, 3840, 2160))
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	img := decodeJPEG(t, out)
	bounds := img.Bounds()
	if bounds.Dx() != 1920 || bounds.Dy() != 1080 {
		t.Fatalf("expected 1920x1080, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestOptimizeNeverEnlarges(t *testing.T) {
	out, err := Optimize(encodePNG(t, 640, 480))
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	img := decodeJPEG(t, out)
	bounds := img.Bounds()
	if bounds.Dx() != 640 || bounds.Dy() != 480 {
		t.Fatalf("expected 640x480, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestOptimizePreservesAspectRatio(t *testing.T) {
	// Tall portrait image: height is the binding constraint.
	out, err := Optimize(encodePNG(t, 1080, 2160))
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	img := decodeJPEG(t, out)
	bounds := img.Bounds()
	if bounds.Dy() != 1080 || bounds.Dx() != 540 {
		t.Fatalf("expected 540x1080, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestOptimizeAcceptsGIF(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test gif: %v", err)
	}
	out, err := Optimize(buf.Bytes())
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	decoded := decodeJPEG(t, out)
	bounds := decoded.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 240 {
		t.Fatalf("expected 320x240, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestOptimizeRejectsGarbage(t *testing.T) {
	if _, err := Optimize([]byte("not an image")); err == nil {
		t.Fatal("expected Optimize() to fail on non-image input")
	}
}

func TestFitWithin(t *testing.T) {
	cases := []struct {
		name                     string
		width, height            int
		wantWidth, wantHeight    int
	}{
		{"inside box", 800, 600, 800, 600},
		{"exact box", 1920, 1080, 1920, 1080},
		{"wide", 3840, 1080, 1920, 540},
		{"tall", 1920, 4320, 480, 1080},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotWidth, gotHeight := fitWithin(tc.width, tc.height, 1920, 1080)
			if gotWidth != tc.wantWidth || gotHeight != tc.wantHeight {
				t.Fatalf("fitWithin(%d, %d) = %dx%d, want %dx%d",
					tc.width, tc.height, gotWidth, gotHeight, tc.wantWidth, tc.wantHeight)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"photo.png":          "photo",
		"dir/My Photo!.jpeg": "My-Photo-",
		".png":               "upload",
		"":                   "upload",
	}
	for in, want := range cases {
		if got := baseName(in); got != want {
			t.Errorf("baseName(%q) = %q, want %q", in, got, want)
		}
	}
}
