package navigation

// --- Min-heap open set ---

// openEntry is one queued visit; g is the cost the entry was pushed with
type openEntry struct {
	ref TileRef
	f   float64
	g   float64
}

// openSet is a binary min-heap on f that allows duplicate refs
// A cheaper path to a queued tile pushes a new entry; the older one goes stale
type openSet []openEntry

func (h *openSet) push(e openEntry) {
	*h = append(*h, e)
	// Sift up
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].f <= (*h)[i].f {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *openSet) pop() openEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].f < (*h)[left].f {
			smallest = right
		}
		if (*h)[i].f <= (*h)[smallest].f {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

func (h openSet) empty() bool { return len(h) == 0 }
