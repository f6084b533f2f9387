package measure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fixedToPx converts a 26.6 fixed-point value to pixels.
func fixedToPx(v fixed.Int26_6) float64 { return float64(v) / 64 }

// The embedded face is parsed once per process; faces derived from it are
// per-call probes.
var (
	regularOnce sync.Once
	regularFont *opentype.Font
	regularErr  error
)

func loadRegular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = opentype.Parse(goregular.TTF)
	})
	return regularFont, regularErr
}

// FontMetrics measures text with real glyph advances from the embedded
// Go Regular face. Hinting is disabled so advances scale linearly with
// font size, preserving fit monotonicity.
type FontMetrics struct {
	fnt *opentype.Font

	// fallback covers the degenerate case of a face the backend cannot
	// instantiate (non-positive size). Measurement must not error, so the
	// estimator answers instead.
	fallback Estimator
}

// NewFontMetrics parses the embedded face and verifies a probe can be
// created from it.
func NewFontMetrics() (*FontMetrics, error) {
	fnt, err := loadRegular()
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	probe, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("create probe face: %w", err)
	}
	probe.Close()
	return &FontMetrics{fnt: fnt, fallback: NewEstimator()}, nil
}

// TextHeight implements Measurer.
func (fm *FontMetrics) TextHeight(content string, widthPx, fontSizePx float64) float64 {
	return wrappedHeight(fm, content, widthPx, fontSizePx)
}

// LineWidth implements Measurer.
func (fm *FontMetrics) LineWidth(line string, fontSizePx float64) float64 {
	face, err := fm.face(fontSizePx)
	if err != nil {
		return fm.fallback.LineWidth(line, fontSizePx)
	}
	defer face.Close()
	return fixedToPx(font.MeasureString(face, line))
}

// LineHeight implements Measurer.
func (fm *FontMetrics) LineHeight(fontSizePx float64) float64 {
	face, err := fm.face(fontSizePx)
	if err != nil {
		return fm.fallback.LineHeight(fontSizePx)
	}
	defer face.Close()
	return fixedToPx(face.Metrics().Height)
}

// face creates a throwaway measurement probe at the given size. The caller
// closes it before returning.
func (fm *FontMetrics) face(fontSizePx float64) (font.Face, error) {
	if fontSizePx <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", fontSizePx)
	}
	return opentype.NewFace(fm.fnt, &opentype.FaceOptions{
		Size:    fontSizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Ensure FontMetrics implements Measurer.
var _ Measurer = (*FontMetrics)(nil)
