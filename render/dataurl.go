package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const pngDataURIPrefix = "data:image/png;base64,"

// EncodeDataURI encodes an image as a base64 PNG data URI
func EncodeDataURI(img image.Image) (string, error) {
	data, err := PNGBytes(img)
	if err != nil {
		return "", err
	}
	return EncodePNGBytes(data), nil
}

// PNGBytes encodes an image as PNG
func PNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNGBytes wraps already-encoded PNG bytes in a data URI
func EncodePNGBytes(data []byte) string {
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI decodes a PNG data URI back into an image. The inverse of
// EncodeDataURI, used by tests and by consumers that post-process crops.
func DecodeDataURI(uri string) (image.Image, error) {
	if !strings.HasPrefix(uri, pngDataURIPrefix) {
		return nil, fmt.Errorf("not a png data uri")
	}
	data, err := base64.StdEncoding.DecodeString(uri[len(pngDataURIPrefix):])
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}
