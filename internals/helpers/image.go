package helper

import (
	"bytes"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ConvertToWebP decode jpeg/png, kecilkan kalau lebih lebar dari maxWidth,
// lalu encode ulang ke WebP.
func ConvertToWebP(data []byte, maxWidth int, quality float32) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("gagal decode gambar: %w", err)
	}

	img = downscaleIfNeeded(img, maxWidth)

	if quality <= 0 {
		quality = 85
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return nil, fmt.Errorf("gagal encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func downscaleIfNeeded(src image.Image, maxW int) image.Image {
	if maxW <= 0 || src.Bounds().Dx() <= maxW {
		return src
	}
	return imaging.Resize(src, maxW, 0, imaging.Lanczos)
}
