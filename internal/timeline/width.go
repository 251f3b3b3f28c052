package timeline

// ResolveColumnWidth picks the per-month column width for a container.
// Columns share the container evenly but never shrink below
// minColumnWidthPx; an empty grid or unmeasured container gets the floor.
func ResolveColumnWidth(containerWidthPx float64, monthCount int, minColumnWidthPx float64) float64 {
	if monthCount <= 0 || containerWidthPx <= 0 {
		return minColumnWidthPx
	}
	w := containerWidthPx / float64(monthCount)
	if w < minColumnWidthPx {
		return minColumnWidthPx
	}
	return w
}
