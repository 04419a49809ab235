// logo.go — Logo loading, aspect-preserving resize, and search-path probing.
package render

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/xob0t/GoSignature/pkg/signature"
)

// LoadLogo decodes the image at path and resizes it so its height equals
// targetHeight, width scaled proportionally, using Lanczos resampling. The
// result carries an alpha channel, so transparent logos composite correctly.
func LoadLogo(path string, targetHeight int) (image.Image, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, &signature.RenderError{Op: "logo decode", Err: errors.Wrapf(err, "open %s", path)}
	}

	bounds := src.Bounds()
	w, h := LogoBoxSize(bounds.Dx(), bounds.Dy(), targetHeight)
	return imaging.Resize(src, w, h, imaging.Lanczos), nil
}

// FindLogo probes the configured search paths in order and returns the first
// existing regular file, or "" when none is found. A missing logo is not an
// error: the layout collapses the logo box instead.
func FindLogo(searchPaths []string) string {
	for _, path := range searchPaths {
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
