package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

const dataURIPrefix = "data:image"

// CompressionError indicates an image payload could not be decoded or
// re-encoded. It propagates to the caller of the photo save path
type CompressionError struct {
	Err error
}

func (e *CompressionError) Error() string {
	return "image compression failed: " + e.Err.Error()
}

func (e *CompressionError) Unwrap() error { return e.Err }

// IsInlineImage reports whether the URI carries an inline image payload
// rather than an external reference
func IsInlineImage(uri string) bool {
	return strings.HasPrefix(uri, dataURIPrefix)
}

// DecodeDataURI extracts the raw bytes and MIME type of a
// data:image/...;base64 payload
func DecodeDataURI(uri string) ([]byte, string, error) {
	if !IsInlineImage(uri) {
		return nil, "", fmt.Errorf("not an inline image payload")
	}
	sep := strings.Index(uri, ",")
	if sep < 0 {
		return nil, "", fmt.Errorf("malformed data URI: missing payload separator")
	}
	meta := strings.TrimPrefix(uri[:sep], "data:")
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("unsupported data URI encoding in %q", meta)
	}
	mimeType := strings.TrimSuffix(meta, ";base64")

	raw, err := base64.StdEncoding.DecodeString(uri[sep+1:])
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 payload: %w", err)
	}
	return raw, mimeType, nil
}

// EncodeDataURI wraps raw image bytes into a base64 data URI
func EncodeDataURI(raw []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

// CompressDataURI re-encodes an inline image payload as JPEG at the given
// quality factor in (0,1). Callers short-circuit quality 1.0 themselves; a
// 100-quality round trip would only burn CPU without shrinking anything.
// pixel dimensions are preserved
func CompressDataURI(uri string, quality float64) (string, error) {
	raw, _, err := DecodeDataURI(uri)
	if err != nil {
		return "", &CompressionError{Err: err}
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", &CompressionError{Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	q := int(math.Round(quality * 100))
	if q < 1 {
		q = 1
	} else if q > 100 {
		q = 100
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
		return "", &CompressionError{Err: fmt.Errorf("failed to encode jpeg: %w", err)}
	}

	return EncodeDataURI(buf.Bytes(), "image/jpeg"), nil
}
