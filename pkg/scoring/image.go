package scoring

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
)

// EncodeImageBase64 encodes an image to base64 JPEG format.
func EncodeImageBase64(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer

	if quality <= 0 || quality > 100 {
		quality = 85
	}

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeBase64Image decodes a base64 string to an image.
func DecodeBase64Image(b64 string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
