package imageio

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/retropix/retropix/pkg/errors"
	"github.com/retropix/retropix/pkg/pixelart"
)

func testBuffer() pixelart.Buffer {
	b := pixelart.NewBuffer(5, 4)
	for i := range b.Pix {
		b.Pix[i] = uint8((i * 37) % 256)
	}
	return b
}

func TestImageRoundTrip(t *testing.T) {
	want := testBuffer()

	got := FromImage(ToImage(want))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromImage(ToImage(b)) mismatch (-want +got):\n%s", diff)
	}
}

func TestFromImageDropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 128})

	b := FromImage(img)
	r, g, bl := b.RGB(0, 0)
	if r != 10 || g != 20 || bl != 30 {
		t.Errorf("pixel 0 = (%d,%d,%d), want alpha ignored (10,20,30)", r, g, bl)
	}
}

func TestEncodeDecodePNG(t *testing.T) {
	want := testBuffer()

	var buf bytes.Buffer
	if err := Encode(&buf, want, "png"); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("png round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadFile(t *testing.T) {
	want := testBuffer()
	path := filepath.Join(t.TempDir(), "out.png")

	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("file round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestEncodeRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, testBuffer(), "exe")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestEncodeRejectsEmptyBuffer(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, pixelart.Buffer{}, "png")
	if !errors.Is(err, errors.ErrCodeEmptyResult) {
		t.Errorf("error = %v, want EMPTY_RESULT", err)
	}
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	err := Save(testBuffer(), filepath.Join(t.TempDir(), "out.xyz"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}
