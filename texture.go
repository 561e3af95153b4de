package view3d

import (
	"fmt"
	"image"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	// Decoders for the formats the loaders accept.
	_ "image/jpeg"
	_ "image/png"
)

// TextureData is a tightly packed RGBA pixel buffer, row-major from the
// top-left, 4 bytes per pixel. It is the CPU-side representation handed to
// Renderer.UploadTexture.
type TextureData struct {
	Width  int
	Height int
	Pixels []uint8
}

// NewTextureData allocates a zeroed texture of the given size.
func NewTextureData(width, height int) *TextureData {
	return &TextureData{
		Width:  width,
		Height: height,
		Pixels: make([]uint8, width*height*4),
	}
}

// SetPixel writes one RGBA pixel. Out-of-range coordinates are ignored.
func (t *TextureData) SetPixel(x, y int, r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	i := (y*t.Width + x) * 4
	t.Pixels[i] = r
	t.Pixels[i+1] = g
	t.Pixels[i+2] = b
	t.Pixels[i+3] = a
}

// LoadTexture decodes PNG or JPEG data from r and converts it to packed
// RGBA.
func LoadTexture(r io.Reader) (*TextureData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return textureFromImage(img), nil
}

// LoadTextureFile loads a texture from a PNG or JPEG file.
func LoadTextureFile(path string) (*TextureData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()
	t, err := LoadTexture(f)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	return t, nil
}

// Downscale returns a bilinearly resampled copy whose longest side is at
// most maxDim. GL implementations cap texture dimensions, so oversized
// images are reduced before upload. The receiver is returned unchanged if
// it already fits.
func (t *TextureData) Downscale(maxDim int) *TextureData {
	if maxDim <= 0 || (t.Width <= maxDim && t.Height <= maxDim) {
		return t
	}
	w, h := t.Width, t.Height
	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	src := t.asImage()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return &TextureData{Width: w, Height: h, Pixels: dst.Pix}
}

// textureFromImage converts any decoded image to packed RGBA.
func textureFromImage(img image.Image) *TextureData {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(rgba, image.Point{}, img, b, xdraw.Src, nil)
	return &TextureData{Width: b.Dx(), Height: b.Dy(), Pixels: rgba.Pix}
}

// asImage wraps the pixel buffer as an image.RGBA without copying.
func (t *TextureData) asImage() *image.RGBA {
	return &image.RGBA{
		Pix:    t.Pixels,
		Stride: t.Width * 4,
		Rect:   image.Rect(0, 0, t.Width, t.Height),
	}
}
