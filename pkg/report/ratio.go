package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Ratio is a width:height aspect ratio, serialized as "W:H" (e.g. "16:9")
// in JSON and as a {w, h} document in BSON.
type Ratio struct {
	W float64 `bson:"w"`
	H float64 `bson:"h"`
}

// ParseRatio parses a "W:H" string into a Ratio.
// Both components must be positive numbers.
func ParseRatio(s string) (Ratio, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Ratio{}, fmt.Errorf("invalid aspect ratio %q: want W:H", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid aspect ratio %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid aspect ratio %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return Ratio{}, fmt.Errorf("invalid aspect ratio %q: components must be positive", s)
	}
	return Ratio{W: w, H: h}, nil
}

// MustRatio parses a "W:H" string and panics on failure.
// Intended for constants and tests.
func MustRatio(s string) Ratio {
	r, err := ParseRatio(s)
	if err != nil {
		panic(err)
	}
	return r
}

// IsZero reports whether the ratio is unset.
func (r Ratio) IsZero() bool { return r.W == 0 && r.H == 0 }

// HeightFor returns the height implied by the ratio at the given width.
func (r Ratio) HeightFor(widthPx float64) float64 {
	if r.W <= 0 {
		return 0
	}
	return widthPx * r.H / r.W
}

// Value returns the scalar W/H value of the ratio.
func (r Ratio) Value() float64 {
	if r.H <= 0 {
		return 0
	}
	return r.W / r.H
}

// String returns the "W:H" form, trimming trailing zeros.
func (r Ratio) String() string {
	return fmt.Sprintf("%s:%s", formatRatioComponent(r.W), formatRatioComponent(r.H))
}

func formatRatioComponent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MarshalText implements encoding.TextMarshaler, so Ratio serializes as
// "W:H" in both JSON and BSON documents.
func (r Ratio) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Ratio) UnmarshalText(text []byte) error {
	parsed, err := ParseRatio(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
