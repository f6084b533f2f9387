// Package fit implements the per-element fit validators.
//
// A fit validator answers one question: does this cell's content render
// completely inside a given width x height box at a candidate font size,
// with no clipping and no scroll affordance? When the answer is no, the
// validator also reports the height at which the content would fit at the
// floor (minimum legible) font size, so the height resolution engine knows
// how far to grow.
//
// # Dispatch
//
// The cell body type is a closed variant set, so dispatch is a single
// exhaustive switch in [Validator.Cell]:
//
//   - text: true content-height probe via the injected [measure.Measurer]
//   - table: header plus whole rows; partial rows are never rendered
//   - pie: minimum radius plus legend geometry, with reflow and Top-N
//     aggregation signalled before non-fit
//   - bar: orientation flip and label thinning signalled before non-fit
//   - kpi, image: never validated here; KPI values scale independently and
//     images either crop (cover) or dictate height (intrinsic)
//
// # Remediations
//
// Structural remediations (aggregate the legend, flip bar orientation,
// thin labels) are signals, not failures: when a remediation makes the
// content fit, the result is a fit carrying the remediation so the
// renderer and the editor can surface it. Only when no remediation helps
// does a validator report non-fit.
//
// Validators are pure: they never mutate shared state, and measurement
// probes live and die within a single call.
package fit
