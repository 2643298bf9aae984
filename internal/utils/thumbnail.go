package utils

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const DefaultThumbnailSize = 256

// Thumbnail decodes content as an image and returns a PNG scaled to fit a
// size x size box. Non-image content fails with the decode error.
func Thumbnail(content []byte, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultThumbnailSize
	}

	img, err := imaging.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}

	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %v", err)
	}
	return buf.Bytes(), nil
}
