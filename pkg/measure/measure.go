package measure

import (
	"fmt"

	"github.com/fogleman/gg"
)

// Context supplies the display-dependent quantities that unit conversion
// needs: the resolution along each axis and the dialog-unit base sizes
// derived from the dialog font. Dialog units differ by axis: the horizontal
// base comes from the average character width, the vertical base from the
// font height.
type Context interface {
	DPIX() float64
	DPIY() float64
	// DialogBaseX returns the width in pixels of one horizontal dialog unit.
	DialogBaseX() float64
	// DialogBaseY returns the height in pixels of one vertical dialog unit.
	DialogBaseY() float64
}

// Static is a Context with fixed values. Used by tests and as the headless
// default when no font is available.
type Static struct {
	ResolutionX float64
	ResolutionY float64
	DialogX     float64
	DialogY     float64
}

func (s Static) DPIX() float64        { return s.ResolutionX }
func (s Static) DPIY() float64        { return s.ResolutionY }
func (s Static) DialogBaseX() float64 { return s.DialogX }
func (s Static) DialogBaseY() float64 { return s.DialogY }

// Default returns the fallback measurement context: 96 dpi and the dialog
// bases of a typical 8pt dialog font (6px average char width, 13.5px height).
func Default() Context {
	return Static{
		ResolutionX: 96,
		ResolutionY: 96,
		DialogX:     6.0 / 4.0,
		DialogY:     13.5 / 8.0,
	}
}

// sampleText is measured to estimate the average character width of a face.
// Digits plus lowercase approximates the mix found in dialog labels.
const sampleText = "0123456789abcdefghijklmnopqrstuvwxyz"

// FontContext derives dialog-unit bases from a real font face.
type FontContext struct {
	resX  float64
	resY  float64
	baseX float64
	baseY float64
}

// NewFontContext loads the TTF face at path at the given point size and
// resolution, measures it, and returns a Context whose dialog bases follow
// the platform convention: one horizontal dlu is a quarter of the average
// character width, one vertical dlu is an eighth of the font height.
func NewFontContext(path string, points, dpi float64) (*FontContext, error) {
	dc := gg.NewContext(1, 1)
	if err := dc.LoadFontFace(path, points*dpi/72); err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	width, height := dc.MeasureString(sampleText)
	avg := width / float64(len(sampleText))
	return &FontContext{
		resX:  dpi,
		resY:  dpi,
		baseX: avg / 4,
		baseY: height / 8,
	}, nil
}

func (f *FontContext) DPIX() float64        { return f.resX }
func (f *FontContext) DPIY() float64        { return f.resY }
func (f *FontContext) DialogBaseX() float64 { return f.baseX }
func (f *FontContext) DialogBaseY() float64 { return f.baseY }
