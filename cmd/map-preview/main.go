package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/tilepath/config"
	"github.com/lixenwraith/tilepath/mapgen"
	"github.com/lixenwraith/tilepath/navigation"
)

// Prints generated maps with a corner-to-corner route, both direct and hierarchical
func main() {
	reader := bufio.NewReader(os.Stdin)
	def := config.Default()

	for {
		fmt.Println("\n=== TILEPATH MAP PREVIEW ===")

		m := def.Map
		m.Width = getInt(reader, "Width [Odd prefered] (default 41): ", 41)
		m.Height = getInt(reader, "Height [Odd prefered] (default 21): ", 21)
		m.Braiding = getFloat(reader, "Braiding Factor [0.0 - 1.0] (default 0.3): ", def.Map.Braiding)
		m.Seed = int64(getInt(reader, "Seed [0 = random] (default 0): ", 0))

		fmt.Print("Channels (2-wide corridors)? [Y/n]: ")
		chStr, _ := reader.ReadString('\n')
		m.Channels = strings.ToLower(strings.TrimSpace(chStr)) != "n"

		fmt.Print("Hierarchical search? [y/N]: ")
		hStr, _ := reader.ReadString('\n')
		hierarchical := strings.ToLower(strings.TrimSpace(hStr)) == "y"

		cfg := def
		cfg.Map = m
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Rejected: %v\n", err)
			continue
		}

		startT := time.Now()
		layout := m.BuildLayout()
		full := mapgen.Build(layout)
		fmt.Printf("Generated %dx%d in %v, %d navigable\n", full.Width(), full.Height(), time.Since(startT), full.NavigableCount())

		start := full.Ref(1, 1)
		end := full.Ref(lastOdd(full.Width()), lastOdd(full.Height()))

		var search navigation.Search
		if hierarchical {
			search = navigation.NewHierarchicalSearch(full, navigation.Downsample(full), []navigation.TileRef{start}, end,
				cfg.Search.IterationsPerAdvance, cfg.Search.MaxAdvanceCalls)
		} else {
			search = navigation.NewBidirectionalSearch([]navigation.TileRef{start}, end,
				cfg.Search.IterationsPerAdvance, cfg.Search.MaxAdvanceCalls, full)
		}

		startT = time.Now()
		calls := 0
		result := navigation.Pending
		for result == navigation.Pending {
			result = search.Advance()
			calls++
		}
		path := search.ReconstructPath()
		fmt.Printf("Search %v after %d advance calls in %v\n", result, calls, time.Since(startT))
		if path != nil {
			fmt.Printf("Path Length: %d tiles\n", len(path))
		}

		draw(layout, full, path, start, end)

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// lastOdd is the last room coordinate of a maze dimension
func lastOdd(n int) int {
	n = max(n, 3)
	if n%2 == 0 {
		return n - 3
	}
	return n - 2
}

func draw(layout mapgen.Layout, g *navigation.Grid, path []navigation.TileRef, start, end navigation.TileRef) {
	onPath := make(map[navigation.TileRef]bool, len(path))
	for _, r := range path {
		onPath[r] = true
	}

	var sb strings.Builder
	for y := 0; y < layout.Height; y++ {
		for x := 0; x < layout.Width; x++ {
			r := g.Ref(x, y)
			switch {
			case r == start:
				sb.WriteString("S")
			case r == end:
				sb.WriteString("E")
			case onPath[r]:
				sb.WriteString("•")
			case !layout.IsPassage(x, y):
				sb.WriteString("█")
			case layout.IsShore(x, y):
				sb.WriteString("░")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	// Clamp
	return min(max(v, 0.0), 1.0)
}
