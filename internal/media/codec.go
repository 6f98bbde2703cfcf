package media

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"
)

const jpegQuality = 90

type format struct {
	ext         string
	contentType string
}

var (
	formatJPEG = format{ext: "jpg", contentType: "image/jpeg"}
	formatPNG  = format{ext: "png", contentType: "image/png"}
	formatGIF  = format{ext: "gif", contentType: "image/gif"}
)

// outputFormat maps a decoder name to the format we write back. Formats we
// can read but not write (webp) become JPEG.
func outputFormat(name string) format {
	switch name {
	case "png":
		return formatPNG
	case "gif":
		return formatGIF
	default:
		return formatJPEG
	}
}

func decode(data []byte) (image.Image, string, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, name, nil
}

func encode(img image.Image, f format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case formatPNG:
		err = png.Encode(&buf, img)
	case formatGIF:
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f.ext, err)
	}
	return buf.Bytes(), nil
}
