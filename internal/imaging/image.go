package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
)

// Image is the single pixel-data encoding contract every source must
// produce before the classifier sees it: raw raster bytes plus MIME type.
type Image struct {
	// Data is the raw encoded image bytes (JPEG/PNG/WebP).
	Data []byte

	// MIME is the detected content type, e.g. "image/jpeg".
	MIME string

	// Path is the originating file path, empty for captured frames.
	Path string
}

// ErrInvalidInput indicates the input could not be turned into a usable
// image (unreadable file, empty data, unrecognized format). Surfaced before
// any session state transition is attempted.
type ErrInvalidInput struct {
	Path string
	Err  error
}

func (e *ErrInvalidInput) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid image input %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid image input: %v", e.Err)
}

func (e *ErrInvalidInput) Unwrap() error { return e.Err }

// Source produces image frames. A file loader and a capture device both
// satisfy this, yielding the identical Image contract.
type Source interface {
	Acquire() (*Image, error)
}

// LoadFile reads an image from disk and validates its format.
func LoadFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrInvalidInput{Path: path, Err: err}
	}
	img, err := FromBytes(data)
	if err != nil {
		return nil, &ErrInvalidInput{Path: path, Err: err}
	}
	img.Path = path
	return img, nil
}

// FromBytes wraps raw encoded bytes as an Image, detecting the format from
// magic bytes.
func FromBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	mime := detectMIME(data)
	if mime == "" {
		return nil, fmt.Errorf("unrecognized image format")
	}
	return &Image{Data: data, MIME: mime}, nil
}

// DataURL returns the image as a base64 data URL, the encoding the external
// report pipeline expects.
func (img *Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Data))
}

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	riffMagic = []byte("RIFF")
	webpMagic = []byte("WEBP")
)

func detectMIME(data []byte) string {
	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return "image/jpeg"
	case bytes.HasPrefix(data, pngMagic):
		return "image/png"
	case len(data) >= 12 && bytes.HasPrefix(data, riffMagic) && bytes.Equal(data[8:12], webpMagic):
		return "image/webp"
	default:
		return ""
	}
}
