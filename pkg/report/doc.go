// Package report defines the serialization types for reports, blocks, and
// chart cells.
//
// This package is the canonical wire format for Statboard's configuration
// data, used for JSON files, API responses, and document-store persistence.
//
// # Architecture
//
// The package sits at the serialization boundary between authoring tools,
// the layout engine, and storage:
//
//   - [Report]: one dashboard, an ordered list of blocks
//   - [Block]: one non-wrapping horizontal row of cells sharing a single
//     height and base font size
//   - [Cell]: one chart element placed inside a block, with a unit width
//     weight and a body type
//   - [ChartResult]: the upstream-computed payload for one chart id
//
// Layout resolution (pkg/layout/resolve) consumes these types read-only and
// never mutates them; a fresh Cell value is produced when content changes.
//
// # Body Types
//
// The cell body type is a closed variant set:
//
//	report.BodyText   // wrapped prose
//	report.BodyTable  // header + rows, never partially rendered
//	report.BodyPie    // labeled numeric series with legend
//	report.BodyBar    // labeled numeric series with axis labels
//	report.BodyKPI    // single value, sized independently
//	report.BodyImage  // cover (crop) or intrinsic (dictates height)
//
// # Serialization
//
// Reports use JSON with bson tags for MongoDB persistence:
//
//	rep, _ := report.ReadFile("report.json")
//	data, _ := report.Marshal(rep)
//	parsed, _ := report.Unmarshal(data)
//
// # Concurrency
//
// All types are plain values; they are safe for concurrent reads but not
// concurrent writes.
package report
