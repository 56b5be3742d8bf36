package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
)

const maxImageWidth = 1280

// ProcessImage decodes an uploaded jpeg/png, scales it down to the catalog
// width when needed, and re-encodes it as webp.
func ProcessImage(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxImageWidth {
		height := bounds.Dy() * maxImageWidth / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: 80}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
