package media

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURI(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return EncodeDataURI(buf.Bytes(), "image/png")
}

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 200, G: 80, B: 40, A: 255}}, image.Point{}, draw.Src)
	return img
}

func noisyImage(w, h int) image.Image {
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func TestCompressDataURI_PreservesDimensions(t *testing.T) {
	uri := pngDataURI(t, solidImage(200, 120))

	out, err := CompressDataURI(uri, 0.5)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	raw, mimeType, err := DecodeDataURI(out)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 120, cfg.Height)
}

func TestCompressDataURI_ShrinksIncompressiblePayload(t *testing.T) {
	uri := pngDataURI(t, noisyImage(200, 200))

	out, err := CompressDataURI(uri, 0.5)
	require.NoError(t, err)
	assert.Less(t, len(out), len(uri))
}

func TestCompressDataURI_LowerQualityIsSmaller(t *testing.T) {
	uri := pngDataURI(t, noisyImage(200, 200))

	high, err := CompressDataURI(uri, 0.9)
	require.NoError(t, err)
	low, err := CompressDataURI(uri, 0.2)
	require.NoError(t, err)

	assert.Less(t, len(low), len(high))
}

func TestCompressDataURI_Errors(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"external reference", "file:///photos/1.jpg"},
		{"missing separator", "data:image/png;base64"},
		{"not base64 encoded", "data:image/png,rawbytes"},
		{"invalid base64", "data:image/png;base64,!!!"},
		{"undecodable image", EncodeDataURI([]byte("not an image"), "image/png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompressDataURI(tt.uri, 0.5)
			require.Error(t, err)
			var compErr *CompressionError
			assert.ErrorAs(t, err, &compErr)
		})
	}
}

func TestDecodeDataURI_RoundTrip(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	uri := EncodeDataURI(payload, "image/png")

	raw, mimeType, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, payload, raw)
	assert.Equal(t, "image/png", mimeType)
}

func TestIsInlineImage(t *testing.T) {
	assert.True(t, IsInlineImage("data:image/png;base64,AAAA"))
	assert.False(t, IsInlineImage("file:///photos/1.jpg"))
	assert.False(t, IsInlineImage("https://example.com/a.png"))
}
