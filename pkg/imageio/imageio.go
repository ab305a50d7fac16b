// Package imageio converts between image files and pixelart buffers.
//
// Decoding goes through disintegration/imaging so EXIF orientation is
// honored; the webp decoder is registered for read-only support. Encoding
// supports the formats imaging can write (png, jpeg, gif, bmp, tiff).
package imageio

import (
	"image"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/retropix/retropix/pkg/errors"
	"github.com/retropix/retropix/pkg/pixelart"
)

// Formats returns the supported output format names, lowercase.
func Formats() []string {
	return []string{"png", "jpeg", "jpg", "gif", "bmp", "tiff"}
}

// Load reads and decodes the image at path into a Buffer.
// EXIF orientation is applied before conversion.
func Load(path string) (pixelart.Buffer, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return pixelart.Buffer{}, err
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if os.IsNotExist(err) {
			return pixelart.Buffer{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file not found: %s", path)
		}
		return pixelart.Buffer{}, errors.Wrap(errors.ErrCodeDecode, err, "failed to decode %s", path)
	}

	return FromImage(img), nil
}

// Decode decodes an image from r into a Buffer.
func Decode(r io.Reader) (pixelart.Buffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return pixelart.Buffer{}, errors.Wrap(errors.ErrCodeDecode, err, "failed to decode image")
	}
	return FromImage(img), nil
}

// Save encodes b to path, picking the format from the file extension.
func Save(b pixelart.Buffer, path string) error {
	if err := errors.ValidateFilePath(path); err != nil {
		return err
	}
	if b.Empty() {
		return errors.New(errors.ErrCodeEmptyResult, "nothing to save: empty image")
	}

	if err := imaging.Save(ToImage(b), path); err != nil {
		if err == imaging.ErrUnsupportedFormat {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "unsupported output extension: %s", path)
		}
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to save %s", path)
	}
	return nil
}

// Encode writes b to w in the named format.
func Encode(w io.Writer, b pixelart.Buffer, format string) error {
	if b.Empty() {
		return errors.New(errors.ErrCodeEmptyResult, "nothing to encode: empty image")
	}

	f, err := parseFormat(format)
	if err != nil {
		return err
	}

	if err := imaging.Encode(w, ToImage(b), f); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to encode %s", format)
	}
	return nil
}

func parseFormat(format string) (imaging.Format, error) {
	f, err := imaging.FormatFromExtension(strings.ToLower(format))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported format: %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// FromImage converts any image.Image to a Buffer, dropping alpha.
func FromImage(img image.Image) pixelart.Buffer {
	nrgba := imaging.Clone(img)
	w := nrgba.Rect.Dx()
	h := nrgba.Rect.Dy()

	out := pixelart.NewBuffer(w, h)
	if out.Empty() {
		return out
	}
	for y := 0; y < h; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		dst := out.Pix[y*w*3 : (y+1)*w*3]
		for x := 0; x < w; x++ {
			dst[x*3+0] = src[x*4+0]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}
	return out
}

// ToImage converts a Buffer to an opaque NRGBA image.
func ToImage(b pixelart.Buffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		src := b.Pix[y*b.Width*3 : (y+1)*b.Width*3]
		dst := img.Pix[y*img.Stride : y*img.Stride+b.Width*4]
		for x := 0; x < b.Width; x++ {
			dst[x*4+0] = src[x*3+0]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 255
		}
	}
	return img
}
