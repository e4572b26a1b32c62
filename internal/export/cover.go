package export

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// Default cover thumbnail bounds.
const (
	DefaultCoverWidth  = 256
	DefaultCoverHeight = 384
)

// resizeCover shrinks the image at path to fit width x height, keeping the
// aspect ratio. Smaller images are left untouched.
func resizeCover(path string, width, height int) (bool, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to decode cover: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= width && bounds.Dy() <= height {
		return false, nil
	}

	thumb := imaging.Fit(img, width, height, imaging.Lanczos)
	if err := imaging.Save(thumb, path); err != nil {
		return false, fmt.Errorf("failed to save resized cover: %w", err)
	}
	return true, nil
}
