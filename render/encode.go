package render

import (
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/imgedit"
)

// ErrFormat is returned for an unknown output format.
var ErrFormat = errors.New("render: unsupported output format")

// JPEGQuality is the quality used when encoding JPEG output.
const JPEGQuality = 92

// Format is an output image format.
type Format string

// Output formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ParseFormat parses a format name or file extension. The empty string
// selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// MIME returns the media type of f.
func (f Format) MIME() string {
	return "image/" + string(f)
}

// Ext returns the file extension of f, with the leading dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Encode writes p to w in format f.
//
// JPEG has no alpha channel; transparent pixels come out black.
func Encode(w io.Writer, p *imgedit.Pixmap, f Format) error {
	img := p.RGBA()
	var err error
	switch f {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrFormat, f)
	}
	if err != nil {
		return fmt.Errorf("render: encode %s: %w", f, err)
	}
	return nil
}
