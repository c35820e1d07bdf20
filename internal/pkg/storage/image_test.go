package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodedBounds(t *testing.T, r io.Reader) image.Rectangle {
	t.Helper()
	img, format, err := image.Decode(r)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	return img.Bounds()
}

func TestImageProcessor_GenerateThumbnail(t *testing.T) {
	p := NewImageProcessor()

	thumb, err := p.GenerateThumbnail(bytes.NewReader(pngOf(t, 800, 400)), 200, 200)
	require.NoError(t, err)

	b := decodedBounds(t, thumb)
	assert.Equal(t, 200, b.Dx())
	assert.Equal(t, 100, b.Dy())
}

func TestImageProcessor_ResizeKeepsSmallImages(t *testing.T) {
	p := NewImageProcessor()

	out, err := p.Resize(bytes.NewReader(pngOf(t, 120, 80)), 1000, 1000)
	require.NoError(t, err)

	b := decodedBounds(t, bytes.NewReader(out))
	assert.Equal(t, 120, b.Dx())
	assert.Equal(t, 80, b.Dy())
}

func TestImageProcessor_RejectsNonImages(t *testing.T) {
	p := NewImageProcessor()

	_, err := p.Resize(strings.NewReader("not an image"), 100, 100)
	assert.Error(t, err)
}
