package navigation

// Downsample builds the half-resolution grid used by HierarchicalSearch
// A coarse tile is navigable if any of its (up to) 2×2 children is navigable; its cost is the
// mean of the navigable children's costs, or of all children when none is navigable.
// Coarse size rounds up, so an odd trailing row/column folds into half-filled coarse tiles and
// every full tile (x,y) maps in range at (x/2, y/2)
func Downsample(full *Grid) *Grid {
	cw := (full.Width() + DownsampleFactor - 1) / DownsampleFactor
	ch := (full.Height() + DownsampleFactor - 1) / DownsampleFactor

	costs := make([]float64, cw*ch)
	navigable := make([]TileRef, 0, full.NavigableCount()/(DownsampleFactor*DownsampleFactor)+1)

	for cy := 0; cy < ch; cy++ {
		for cx := 0; cx < cw; cx++ {
			var navSum, allSum float64
			navCount, allCount := 0, 0

			for dy := 0; dy < DownsampleFactor; dy++ {
				for dx := 0; dx < DownsampleFactor; dx++ {
					x, y := cx*DownsampleFactor+dx, cy*DownsampleFactor+dy
					if !full.InBounds(x, y) {
						continue
					}
					r := full.Ref(x, y)
					c := full.Cost(r)
					allSum += c
					allCount++
					if full.IsNavigable(r) {
						navSum += c
						navCount++
					}
				}
			}

			idx := cy*cw + cx
			if navCount > 0 {
				costs[idx] = navSum / float64(navCount)
				navigable = append(navigable, TileRef(idx))
			} else if allCount > 0 {
				costs[idx] = allSum / float64(allCount)
			}
		}
	}

	return NewGrid(cw, ch, costs, navigable)
}
