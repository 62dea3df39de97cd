package imagepkg

import (
	"bytes"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/youruser/deckcode/internal/util"
)

// DownloadImage downloads an image from URL and returns image.Image (decoded).
func DownloadImage(url string, timeout time.Duration) (image.Image, error) {
	body, err := util.GetBytes(url, timeout)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(body))
}
