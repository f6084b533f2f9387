package report

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Body types for cells. The set is closed: layout dispatches over it with an
// exhaustive switch.
const (
	BodyText  = "text"
	BodyTable = "table"
	BodyPie   = "pie"
	BodyBar   = "bar"
	BodyKPI   = "kpi"
	BodyImage = "image"
)

// ValidBodyTypes is the set of supported cell body types.
var ValidBodyTypes = map[string]bool{
	BodyText:  true,
	BodyTable: true,
	BodyPie:   true,
	BodyBar:   true,
	BodyKPI:   true,
	BodyImage: true,
}

// Image display modes.
const (
	// ImageModeCover crops the image to fill its cell. The image never
	// influences block height and never fails fit.
	ImageModeCover = "cover"

	// ImageModeIntrinsic lets the image dictate block height from its
	// native aspect ratio (intrinsic media authority).
	ImageModeIntrinsic = "setIntrinsic"
)

// Cell width unit weights. A cell occupies Width parts of the row's
// `sum(widths) fr` column template.
const (
	MinCellWidth = 1
	MaxCellWidth = 2
)

// =============================================================================
// Cell - One Element Placed in a Block
// =============================================================================

// Cell is one chart element placed in a block.
//
// Exactly one payload field matching BodyType is populated. Cells are
// constructed fresh per render pass from upstream chart-result data and
// never mutated afterwards.
type Cell struct {
	ChartID  string `json:"chart_id" bson:"chart_id"`
	Width    int    `json:"width" bson:"width"` // unit weight, 1 or 2
	BodyType string `json:"body_type" bson:"body_type"`

	// Payloads - exactly one set, matching BodyType.
	Text   string      `json:"text,omitempty" bson:"text,omitempty"`
	Table  *TableData  `json:"table,omitempty" bson:"table,omitempty"`
	Series []DataPoint `json:"series,omitempty" bson:"series,omitempty"` // pie, bar
	KPI    *KPIData    `json:"kpi,omitempty" bson:"kpi,omitempty"`
	Image  *ImageData  `json:"image,omitempty" bson:"image,omitempty"`
}

// TableData holds a rendered table: one header row plus body rows.
// Rows are never partially rendered; either all fit or the block grows.
type TableData struct {
	Header []string   `json:"header" bson:"header"`
	Rows   [][]string `json:"rows" bson:"rows"`
}

// DataPoint is one labeled value of a pie or bar series.
type DataPoint struct {
	Label string  `json:"label" bson:"label"`
	Value float64 `json:"value" bson:"value"`
}

// KPIData holds a single headline value with an optional unit label.
// KPI values are sized by their own routine, independent of the block's
// base font size.
type KPIData struct {
	Value string `json:"value" bson:"value"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// ImageData describes an image cell: the source's intrinsic aspect ratio
// and the display mode.
type ImageData struct {
	AspectRatio Ratio  `json:"aspect_ratio" bson:"aspect_ratio"`
	Mode        string `json:"mode" bson:"mode"`
}

// IsIntrinsic reports whether the cell is an image in intrinsic mode, i.e.
// whether it participates in height determination.
func (c *Cell) IsIntrinsic() bool {
	return c.BodyType == BodyImage && c.Image != nil && c.Image.Mode == ImageModeIntrinsic
}

// ParticipatesInFit reports whether the cell is judged by a fit validator.
// KPI values scale independently and images either crop (cover) or dictate
// height (intrinsic); neither can fail fit.
func (c *Cell) ParticipatesInFit() bool {
	switch c.BodyType {
	case BodyKPI, BodyImage:
		return false
	default:
		return true
	}
}

// Validate checks structural integrity of the cell: a known body type, a
// legal width weight, and a payload matching the body type.
func (c *Cell) Validate() error {
	if c.ChartID == "" {
		return errCell("cell is missing chart_id")
	}
	if c.Width < MinCellWidth || c.Width > MaxCellWidth {
		return errCell("cell %s: width must be %d or %d, got %d", c.ChartID, MinCellWidth, MaxCellWidth, c.Width)
	}
	if !ValidBodyTypes[c.BodyType] {
		return errCell("cell %s: unknown body type %q", c.ChartID, c.BodyType)
	}
	switch c.BodyType {
	case BodyText:
		if c.Text == "" {
			return errCell("cell %s: text body requires text content", c.ChartID)
		}
	case BodyTable:
		if c.Table == nil || len(c.Table.Header) == 0 {
			return errCell("cell %s: table body requires a header row", c.ChartID)
		}
		for i, row := range c.Table.Rows {
			if len(row) != len(c.Table.Header) {
				return errCell("cell %s: table row %d has %d columns, header has %d",
					c.ChartID, i, len(row), len(c.Table.Header))
			}
		}
	case BodyPie, BodyBar:
		if len(c.Series) == 0 {
			return errCell("cell %s: %s body requires a series", c.ChartID, c.BodyType)
		}
	case BodyKPI:
		if c.KPI == nil || c.KPI.Value == "" {
			return errCell("cell %s: kpi body requires a value", c.ChartID)
		}
	case BodyImage:
		if c.Image == nil {
			return errCell("cell %s: image body requires image data", c.ChartID)
		}
		if c.Image.Mode != ImageModeCover && c.Image.Mode != ImageModeIntrinsic {
			return errCell("cell %s: unknown image mode %q", c.ChartID, c.Image.Mode)
		}
		if c.Image.AspectRatio.W <= 0 || c.Image.AspectRatio.H <= 0 {
			return errCell("cell %s: image aspect ratio must be positive", c.ChartID)
		}
	}
	return nil
}

// =============================================================================
// ChartResult - Upstream-Computed Payload
// =============================================================================

// ChartResult is the resolved payload for one chart id, computed upstream
// from raw event statistics. The layout core treats it as opaque beyond the
// fields the fit validators need.
type ChartResult struct {
	ChartID string      `json:"chart_id" bson:"chart_id"`
	Type    string      `json:"type" bson:"type"` // matches a cell BodyType
	Text    string      `json:"text,omitempty" bson:"text,omitempty"`
	Table   *TableData  `json:"table,omitempty" bson:"table,omitempty"`
	Series  []DataPoint `json:"series,omitempty" bson:"series,omitempty"`
	KPI     *KPIData    `json:"kpi,omitempty" bson:"kpi,omitempty"`
	Image   *ImageData  `json:"image,omitempty" bson:"image,omitempty"`
}

// NewCell constructs a render-pass Cell from a chart result and the
// author-configured width weight. The result's type tag becomes the cell
// body type.
func NewCell(res ChartResult, width int) Cell {
	return Cell{
		ChartID:  res.ChartID,
		Width:    width,
		BodyType: res.Type,
		Text:     res.Text,
		Table:    res.Table,
		Series:   res.Series,
		KPI:      res.KPI,
		Image:    res.Image,
	}
}
