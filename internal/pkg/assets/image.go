package assets

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Image логотип, подготовленный для встраивания в PDF
type Image struct {
	Name   string // уникальное имя для регистрации в документе
	Data   []byte
	Type   string // "JPG" или "PNG"
	Width  int
	Height int
}

// AspectRatio возвращает отношение ширины к высоте
func (i Image) AspectRatio() float64 {
	if i.Height == 0 {
		return 1
	}
	return float64(i.Width) / float64(i.Height)
}

// prepare декодирует изображение, уменьшает его до maxDim по большей
// стороне и приводит к JPEG или PNG. JPEG отдается как есть, только если
// он не был ни уменьшен, ни повернут по EXIF: gofpdf ориентацию не учитывает.
// Остальные форматы перекодируются в PNG.
func prepare(source string, data []byte, maxDim int) (Image, error) {
	raw, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	resized := false
	if maxDim > 0 && (bounds.Dx() > maxDim || bounds.Dy() > maxDim) {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		bounds = img.Bounds()
		resized = true
	}
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return Image{}, fmt.Errorf("%w: empty image", ErrDecode)
	}

	out := Image{
		Name:   imageName(source),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	oriented := bounds.Dx() != raw.Width || bounds.Dy() != raw.Height
	if format == "jpeg" && !resized && !oriented {
		out.Type = "JPG"
		out.Data = data
		return out, nil
	}

	encoding, pdfType := imaging.PNG, "PNG"
	if format == "jpeg" {
		encoding, pdfType = imaging.JPEG, "JPG"
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, encoding); err != nil {
		return Image{}, fmt.Errorf("%w: re-encode: %v", ErrDecode, err)
	}
	out.Type = pdfType
	out.Data = buf.Bytes()
	return out, nil
}

func imageName(source string) string {
	sum := sha1.Sum([]byte(source))
	return "logo-" + hex.EncodeToString(sum[:8])
}
