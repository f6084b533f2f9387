package measure

import "unicode/utf8"

// Default estimator factors, expressed in em (multiples of the font size).
// 0.55em is a reasonable mean advance for Latin text in a regular-weight
// sans face; 1.25em matches common body-copy line height.
const (
	DefaultCharWidthEm  = 0.55
	DefaultLineHeightEm = 1.25
)

// Estimator is a deterministic text-wrapping simulation: every rune
// advances by a fixed fraction of the font size. It trades glyph accuracy
// for zero dependencies and hand-checkable arithmetic.
type Estimator struct {
	// CharWidthEm is the advance per rune in em.
	CharWidthEm float64

	// LineHeightEm is the line box height in em.
	LineHeightEm float64
}

// NewEstimator returns an Estimator with the default factors.
func NewEstimator() Estimator {
	return Estimator{CharWidthEm: DefaultCharWidthEm, LineHeightEm: DefaultLineHeightEm}
}

// TextHeight implements Measurer.
func (e Estimator) TextHeight(content string, widthPx, fontSizePx float64) float64 {
	return wrappedHeight(e, content, widthPx, fontSizePx)
}

// LineWidth implements Measurer.
func (e Estimator) LineWidth(line string, fontSizePx float64) float64 {
	return float64(utf8.RuneCountInString(line)) * e.CharWidthEm * fontSizePx
}

// LineHeight implements Measurer.
func (e Estimator) LineHeight(fontSizePx float64) float64 {
	return e.LineHeightEm * fontSizePx
}

// Ensure Estimator implements Measurer.
var _ Measurer = Estimator{}
