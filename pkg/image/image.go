// Package image holds decoded bitmaps created from encoded byte buffers.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"

	// additional decoders beyond what imaging registers
	_ "golang.org/x/image/webp"
)

var (
	ErrSize   = errors.New("image size does not fit the buffer")
	ErrDecode = errors.New("image could not be decoded")
)

// Image is an immutable decoded bitmap.
type Image struct {
	img    *image.NRGBA
	format string
}

// NewFromPNG decodes the first size bytes of buf. Despite the name any
// registered format (PNG, JPEG, GIF, BMP, TIFF, WebP) is accepted.
func NewFromPNG(buf []byte, size int) (*Image, error) {
	if size < 0 || size > len(buf) {
		return nil, fmt.Errorf("%w: size %d, buffer %d", ErrSize, size, len(buf))
	}
	src, format, err := image.Decode(bytes.NewReader(buf[:size]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &Image{
		img:    imaging.Clone(src),
		format: format,
	}, nil
}

// FromImage copies src into a new Image.
func FromImage(src image.Image) *Image {
	return &Image{img: imaging.Clone(src), format: "png"}
}

// Bounds returns the pixel dimensions.
func (i *Image) Bounds() image.Rectangle {
	return i.img.Bounds()
}

func (i *Image) Width() int {
	return i.img.Bounds().Dx()
}

func (i *Image) Height() int {
	return i.img.Bounds().Dy()
}

// Format is the name of the format the image was decoded from.
func (i *Image) Format() string {
	return i.format
}

// Bitmap returns a copy of the pixels.
func (i *Image) Bitmap() *image.NRGBA {
	return imaging.Clone(i.img)
}

// PNG encodes the image as PNG.
func (i *Image) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, i.img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Codec persists images to a filesystem.
type Codec struct {
	Fs afero.Fs
}

// NewCodec returns a Codec writing to the OS filesystem.
func NewCodec() *Codec {
	return &Codec{Fs: afero.NewOsFs()}
}

// WriteToFile encodes img according to the extension of path, using PNG
// when the extension is unknown. An existing file is overwritten.
func (c *Codec) WriteToFile(img *Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		format = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img.img, format); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := c.Fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return afero.WriteFile(c.Fs, path, buf.Bytes(), 0644)
}

// ReadFile decodes the image stored at path.
func (c *Codec) ReadFile(path string) (*Image, error) {
	buf, err := afero.ReadFile(c.Fs, path)
	if err != nil {
		return nil, err
	}
	img, err := NewFromPNG(buf, len(buf))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// WriteToFile writes img to the OS filesystem.
func WriteToFile(img *Image, path string) error {
	return NewCodec().WriteToFile(img, path)
}

// Ext returns the lowercase extension WriteToFile uses for a format name.
func Ext(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return ".jpg"
	case "gif":
		return ".gif"
	case "bmp":
		return ".bmp"
	case "tiff", "tif":
		return ".tif"
	default:
		return ".png"
	}
}
