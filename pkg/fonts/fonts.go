// Package fonts provides font faces for raster rendering.
//
// The Go fonts from golang.org/x/image/font/gofont are compiled into the
// binary, so PNG output does not depend on system fonts. SVG output names
// the same family first in its CSS font stack.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font stack used in SVG output.
const FontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// Weight selects a face.
type Weight int

const (
	Regular Weight = iota
	Bold
)

var (
	parseOnce sync.Once
	parsed    [2]*truetype.Font
	parseErr  error
)

func load() error {
	parseOnce.Do(func() {
		for i, data := range [][]byte{goregular.TTF, gobold.TTF} {
			f, err := truetype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parse embedded font %d: %w", i, err)
				return
			}
			parsed[i] = f
		}
	})
	return parseErr
}

// Face returns a face of the given weight at size points for 72 DPI output.
// Faces are not safe for concurrent use; create one per renderer.
func Face(w Weight, size float64) (font.Face, error) {
	if err := load(); err != nil {
		return nil, err
	}
	if w != Bold {
		w = Regular
	}
	return truetype.NewFace(parsed[w], &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}
