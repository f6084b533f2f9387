// Package measure provides the text measurement capability used by the fit
// validators.
//
// Fit checks need a true content-height probe: "how tall is this text when
// wrapped at width W and font size F?". The probe is abstracted as the
// [Measurer] interface so the resolution algorithm stays independent of the
// rendering backend.
//
// Two implementations are provided:
//
//   - [FontMetrics]: real glyph advances from an embedded font
//     (golang.org/x/image/font/gofont/goregular) via the opentype package.
//     Used by the server and CLI so measured heights match what a renderer
//     using the same font produces.
//   - [Estimator]: a deterministic per-rune approximation. Useful where
//     font loading is undesirable and in tests, where round numbers make
//     expected values hand-checkable.
//
// Both implementations are stateless after construction and safe for
// concurrent use. Measurement probes are created, used, and discarded
// within a single call; nothing content-dependent is cached across calls.
//
// Line wrapping is greedy word wrap: words move to the next line when they
// no longer fit, and a single word wider than the line is broken between
// runes. With unhinted metrics, advance widths scale linearly with font
// size, which gives the monotonicity the typography binary search relies
// on: if content fits at size F it also fits at every size below F.
package measure
