package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

const jpegQuality = 80

// ImageProcessor handles image processing like resizing.
type ImageProcessor struct{}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// GenerateThumbnail creates a JPEG thumbnail fitting in maxWidth x maxHeight.
func (p *ImageProcessor) GenerateThumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	b, err := p.fit(content, maxWidth, maxHeight)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// Resize re-encodes an image as JPEG, shrinking it to fit in maxWidth x maxHeight.
// Images already inside the box keep their dimensions.
func (p *ImageProcessor) Resize(content io.Reader, maxWidth, maxHeight int) ([]byte, error) {
	return p.fit(content, maxWidth, maxHeight)
}

func (p *ImageProcessor) fit(content io.Reader, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
