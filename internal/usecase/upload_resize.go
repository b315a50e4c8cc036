package usecase

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
)

// 幅がmaxWidthを超えるJPEG/PNGだけ縮小する（縦横比は維持）。
// WebPはエンコーダが無いのでそのまま。
func downscale(data []byte, mime string, maxWidth int) ([]byte, error) {
	if mime != "image/jpeg" && mime != "image/png" {
		return data, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= maxWidth {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	resized := resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
	default:
		err = png.Encode(&buf, resized)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
