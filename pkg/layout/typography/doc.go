// Package typography computes the single base font size shared by every
// element of a block, plus the independently sized KPI values.
//
// # Base Size Search
//
// Admissibility is monotone: if every cell fits at size F, every cell also
// fits at any smaller size. The calculator exploits this with a binary
// search over a quantized size grid between the configured floor and
// ceiling. The floor is checked first; when even the floor is inadmissible
// the calculator reports the height the content needs and leaves growing
// the block to the height resolution engine. The calculator judges, it
// never resizes.
//
// # Bar Labels
//
// Wrapped bar labels can force a smaller font than plain fit would allow,
// so a closed-form cap (largest size at which every label fits its line
// budget within the per-bar slot) lowers the search ceiling before the
// search runs. The cap relies on unhinted glyph advances scaling linearly
// with font size.
//
// # KPI Values
//
// KPI values never share the base size. Each value gets the largest size
// that keeps it on one line within its cell and within its vertical share,
// computed in closed form from a probe measurement.
package typography
