package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/statboard/statboard/pkg/errors"
)

// =============================================================================
// Report - One Dashboard
// =============================================================================

// Report is one dashboard: an ordered list of blocks rendered top to bottom.
type Report struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Blocks    []Block   `json:"blocks" bson:"blocks"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Validate checks the report and all its blocks.
func (r *Report) Validate() error {
	if r.ID == "" {
		return errors.New(errors.ErrCodeInvalidReport, "report is missing id")
	}
	if len(r.Blocks) == 0 {
		return errors.New(errors.ErrCodeInvalidReport, "report %s has no blocks", r.ID)
	}
	for i := range r.Blocks {
		if err := r.Blocks[i].Validate(); err != nil {
			return fmt.Errorf("report %s, block %d: %w", r.ID, i, err)
		}
	}
	return nil
}

// =============================================================================
// Block - One Non-Wrapping Row of Cells
// =============================================================================

// Block is an ordered sequence of cells rendered as one non-wrapping
// horizontal row. All cells share one resolved height and one base font
// size; the row's column template is `sum(cell.Width) fr` units.
type Block struct {
	ID        string `json:"id" bson:"id"`
	Title     string `json:"title,omitempty" bson:"title,omitempty"`
	ShowTitle bool   `json:"show_title,omitempty" bson:"show_title,omitempty"`
	Cells     []Cell `json:"cells" bson:"cells"`

	// AspectRatioOverride pins the block's height to an explicit aspect
	// ratio. Only legal when every cell is text or table; intrinsic media
	// always takes precedence.
	AspectRatioOverride Ratio `json:"aspect_ratio_override,omitempty" bson:"aspect_ratio_override,omitempty"`

	// Author-set height bounds in pixels. Zero means unset.
	MaxAllowedHeightPx float64 `json:"max_allowed_height_px,omitempty" bson:"max_allowed_height_px,omitempty"`
	MinAllowedHeightPx float64 `json:"min_allowed_height_px,omitempty" bson:"min_allowed_height_px,omitempty"`
}

// TotalWidthUnits returns the sum of the cell width weights, i.e. the
// denominator of each cell's horizontal share.
func (b *Block) TotalWidthUnits() int {
	total := 0
	for i := range b.Cells {
		total += b.Cells[i].Width
	}
	return total
}

// HasIntrinsicMedia reports whether any cell is an intrinsic-mode image.
func (b *Block) HasIntrinsicMedia() bool {
	for i := range b.Cells {
		if b.Cells[i].IsIntrinsic() {
			return true
		}
	}
	return false
}

// AspectOverrideAllowed reports whether an explicit aspect ratio override
// is legal for this block's cell composition: every cell must be text or
// table.
func (b *Block) AspectOverrideAllowed() bool {
	if len(b.Cells) == 0 {
		return false
	}
	for i := range b.Cells {
		switch b.Cells[i].BodyType {
		case BodyText, BodyTable:
		default:
			return false
		}
	}
	return true
}

// Validate checks structural integrity of the block and its cells: unique
// chart ids, legal width weights, payloads matching body types, and
// consistent author-set height bounds.
func (b *Block) Validate() error {
	if b.ID == "" {
		return errors.New(errors.ErrCodeInvalidBlock, "block is missing id")
	}
	if len(b.Cells) == 0 {
		return errors.New(errors.ErrCodeInvalidBlock, "block %s has no cells", b.ID)
	}
	seen := make(map[string]bool, len(b.Cells))
	for i := range b.Cells {
		if err := b.Cells[i].Validate(); err != nil {
			return err
		}
		id := b.Cells[i].ChartID
		if seen[id] {
			return errors.New(errors.ErrCodeInvalidBlock, "block %s: duplicate chart id %q", b.ID, id)
		}
		seen[id] = true
	}
	if b.MaxAllowedHeightPx < 0 || b.MinAllowedHeightPx < 0 {
		return errors.New(errors.ErrCodeInvalidBlock, "block %s: height bounds must be non-negative", b.ID)
	}
	if b.MaxAllowedHeightPx > 0 && b.MinAllowedHeightPx > b.MaxAllowedHeightPx {
		return errors.New(errors.ErrCodeInvalidBlock,
			"block %s: min allowed height %.0f exceeds max allowed height %.0f",
			b.ID, b.MinAllowedHeightPx, b.MaxAllowedHeightPx)
	}
	return nil
}

func errCell(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidCell, format, args...)
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Report to pretty-printed JSON bytes.
func Marshal(r Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Report and validates it.
func Unmarshal(data []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("unmarshal report: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Report{}, err
	}
	return r, nil
}

// WriteFile writes a Report to a JSON file.
func WriteFile(r Report, path string) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Report from a JSON file.
func ReadFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
