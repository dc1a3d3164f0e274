package imaging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromBytes_DetectsFormats(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		mime string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}, "image/png"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "image/webp"},
	}

	for _, tt := range tests {
		img, err := FromBytes(tt.data)
		if err != nil {
			t.Errorf("%s: FromBytes returned error: %v", tt.name, err)
			continue
		}
		if img.MIME != tt.mime {
			t.Errorf("%s: MIME = %q, want %q", tt.name, img.MIME, tt.mime)
		}
	}
}

func TestFromBytes_Rejects(t *testing.T) {
	if _, err := FromBytes(nil); err == nil {
		t.Error("empty data should be rejected")
	}
	if _, err := FromBytes([]byte("not an image")); err == nil {
		t.Error("unknown format should be rejected")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.jpg"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var invalid *ErrInvalidInput
	if !errors.As(err, &invalid) {
		t.Errorf("error should be *ErrInvalidInput, got %T", err)
	}
}

func TestLoadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lesion.png")
	data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if img.MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", img.MIME)
	}
	if img.Path != path {
		t.Errorf("Path = %q, want %q", img.Path, path)
	}
}

func TestDataURL(t *testing.T) {
	img := &Image{Data: []byte{0xFF, 0xD8, 0xFF}, MIME: "image/jpeg"}
	url := img.DataURL()
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Errorf("unexpected data URL prefix: %q", url)
	}
}
