// Package images normalizes uploaded pictures before they are stored in the
// catalog as data URIs.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"strings"

	"github.com/nfnt/resize"
)

var (
	// ErrNotDataURI is returned for input that is not a base64 data URI.
	ErrNotDataURI = errors.New("not a base64 data URI")
	// ErrUnsupportedImage is returned when the payload can't be decoded as JPEG, PNG or GIF.
	ErrUnsupportedImage = errors.New("unsupported image format")
)

const jpegQuality = 80

// Normalize decodes a data URI image, scales it down to maxWidth (keeping the
// aspect ratio) when it is wider, and returns it re-encoded as a JPEG data URI.
// A maxWidth of 0 disables scaling.
func Normalize(dataURI string, maxWidth uint) (string, error) {
	payload, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	if maxWidth > 0 && uint(img.Bounds().Dx()) > maxWidth {
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode %s image as jpeg: %w", format, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// decodeDataURI returns the bytes of a "data:<mime>;base64,<payload>" URI.
func decodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, ErrNotDataURI
	}
	header, payload, found := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !found || !strings.HasSuffix(header, ";base64") {
		return nil, ErrNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	return data, nil
}
