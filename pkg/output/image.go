package output

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Options controls how a rendered image is written
type Options struct {
	BottomUp bool // Write the bottom row first
}

// Save writes img to path, choosing the encoder from the file extension.
// ".ppm" writes a P3 PPM; png, jpg, gif, tif and bmp go through imaging.
func Save(path string, img image.Image, opts Options) error {
	if opts.BottomUp {
		img = imaging.FlipV(img)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".ppm" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := WritePPM(file, img); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}

	if _, err := imaging.FormatFromExtension(ext); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// EncodePNG returns img encoded as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail scales img down to fit within maxSize x maxSize, keeping its
// aspect ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)
}

// ThumbnailPath derives the thumbnail file name for path,
// e.g. "out/render.png" becomes "out/render_thumb.png"
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}
