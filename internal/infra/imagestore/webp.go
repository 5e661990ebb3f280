package imagestore

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1600
	webpQuality   = 82
)

// normalizeToWebP decodifica la imagen subida (jpeg/png/gif), la reduce
// a un ancho máximo y la re-codifica como webp.
func normalizeToWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imagestore: failed to decode image: %w", err)
	}

	src = downscale(src, maxImageWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("imagestore: failed to encode webp: %w", err)
	}

	return buf.Bytes(), nil
}

func downscale(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
