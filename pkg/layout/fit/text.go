package fit

// Text validates wrapped prose: it fits iff the true content height at the
// candidate font size is no taller than the box. The measurement is a real
// wrapping probe, never a clipped or scrollbar-dependent approximation.
func (v *Validator) Text(content string, c Constraints) (Result, error) {
	if err := c.validate(); err != nil {
		return Result{}, err
	}

	innerW, innerH := v.inner(c)
	if v.M.TextHeight(content, innerW, c.FontPx) <= innerH {
		return Result{Fits: true}, nil
	}

	// Report the height that admits the content at the floor size, so the
	// resolution engine knows the minimum viable growth.
	required := v.M.TextHeight(content, innerW, c.FloorFontPx)
	return Result{
		Fits:             false,
		RequiredHeightPx: v.pad(required),
		Remediations:     []Remediation{RemediationSplitBlock},
	}, nil
}
