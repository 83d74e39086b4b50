package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tilepath/config"
	"github.com/lixenwraith/tilepath/mapgen"
	"github.com/lixenwraith/tilepath/navigation"
	"github.com/lixenwraith/tilepath/parameter"
)

var (
	configFlag = flag.String("config", "", "TOML config file (defaults built in)")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/"+logFileName)
	seedFlag   = flag.Int64("seed", 0, "Maze seed, 0 = time-based")
)

const statusLines = 2

var (
	styleWall     = tcell.StyleDefault.Background(tcell.NewRGBColor(60, 48, 36))
	styleWater    = tcell.StyleDefault.Background(tcell.NewRGBColor(16, 32, 72))
	styleShore    = tcell.StyleDefault.Background(tcell.NewRGBColor(28, 52, 96))
	styleForward  = tcell.StyleDefault.Background(tcell.NewRGBColor(20, 90, 110))
	styleBackward = tcell.StyleDefault.Background(tcell.NewRGBColor(90, 40, 110))
	stylePath     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.NewRGBColor(16, 32, 72))
	styleShip     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePlane    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleTarget   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleShell    = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Sandbox drives a ship along a searched path, a plane along direct steps and an optional
// shell along a ballistic arc, one tick at a time
type Sandbox struct {
	screen        tcell.Screen
	width, height int
	cfg           config.Config
	rng           *rand.Rand

	layout mapgen.Layout
	grid   *navigation.Grid
	coarse *navigation.Grid
	air    *navigation.DirectStepPathfinder
	arc    *navigation.ParabolaPathFinder

	hierarchical bool
	finder       *navigation.PathFinder
	active       *navigation.BidirectionalSearch // Search currently feeding the ship, for drawing
	path         []navigation.TileRef

	ship, plane, target navigation.TileRef
	shipDone, planeDone bool
	shell               navigation.TileRef
	shellFlying         bool
	lastResult          navigation.Result
	tick                int

	audioInit bool
}

func NewSandbox(cfg config.Config, seed int64) (*Sandbox, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Sandbox{
		screen:       screen,
		cfg:          cfg,
		rng:          rand.New(rand.NewSource(seed)),
		hierarchical: cfg.Search.Hierarchical,
	}
	s.width, s.height = screen.Size()

	if cfg.Sandbox.Sound {
		if err := s.initAudio(); err != nil {
			// Non-fatal, sandbox runs silent
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	s.rebuildMap()
	s.newRun()
	return s, nil
}

func (s *Sandbox) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		s.audioInit = true
	}
	return err
}

func (s *Sandbox) playTone(freq int) {
	if !s.audioInit {
		return
	}
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		log.Printf("tone %d Hz: %v", freq, err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(parameter.SandboxToneDurationMs*time.Millisecond), sine))
}

// rebuildMap regenerates terrain to fill the terminal
func (s *Sandbox) rebuildMap() {
	mapCfg := s.cfg.Map
	mapCfg.Width = max(s.width, 3)
	mapCfg.Height = max(s.height-statusLines, 3)
	mapCfg.Seed = s.rng.Int63()

	s.layout = mapCfg.BuildLayout()
	s.grid = mapgen.Build(s.layout)
	s.coarse = navigation.Downsample(s.grid)
	s.air = navigation.NewDirectStepPathfinder(s.grid)
	s.arc = navigation.NewParabolaPathFinder(s.grid)
	log.Printf("map %dx%d, %d navigable", s.grid.Width(), s.grid.Height(), s.grid.NavigableCount())
}

// newRun picks a fresh start and target and resets both units
func (s *Sandbox) newRun() {
	sx, sy, ok1 := s.layout.RandomPassage(s.rng)
	tx, ty, ok2 := s.layout.RandomPassage(s.rng)
	if !ok1 || !ok2 {
		log.Printf("no passages on map")
		return
	}
	s.ship = s.grid.Ref(sx, sy)
	s.plane = s.ship
	s.target = s.grid.Ref(tx, ty)
	s.shipDone, s.planeDone = false, false
	s.shellFlying = false
	s.path = nil
	s.active = nil
	s.lastResult = navigation.Pending

	iters := parameter.SandboxIterations
	calls := parameter.SandboxMaxAdvance
	if s.hierarchical {
		s.finder = navigation.NewPathFinderWith(s.grid, func(curr, dst navigation.TileRef) navigation.Search {
			h := navigation.NewHierarchicalSearch(s.grid, s.coarse, []navigation.TileRef{curr}, dst, iters, calls)
			s.active = h.Inner()
			return h
		})
	} else {
		s.finder = navigation.NewPathFinderWith(s.grid, func(curr, dst navigation.TileRef) navigation.Search {
			b := navigation.NewBidirectionalSearch([]navigation.TileRef{curr}, dst, iters, calls, s.grid)
			s.active = b
			return b
		})
	}
	s.finder.OnFinish = func(search navigation.Search, r navigation.Result) {
		log.Printf("search finished: %v after %d advance calls", r, s.active.Stats().AdvanceCalls)
		if r == navigation.Completed {
			s.path = search.ReconstructPath()
			s.playTone(parameter.SandboxToneCompleted)
		} else {
			s.playTone(parameter.SandboxToneNotFound)
		}
	}
}

// update advances both units by one tick
func (s *Sandbox) update() {
	s.tick++

	if !s.shipDone {
		res := s.finder.NextTile(s.ship, s.target, 1)
		s.lastResult = res.Type
		switch res.Type {
		case navigation.NextTile:
			s.ship = res.Tile
		case navigation.Completed, navigation.PathNotFound:
			s.shipDone = true
		}
	}

	if s.shellFlying {
		next, arrived := s.arc.NextTile(1)
		if arrived || !s.grid.InBounds(s.grid.X(next), s.grid.Y(next)) {
			s.shellFlying = false
		} else {
			s.shell = next
		}
	}

	if !s.planeDone {
		next, arrived := s.air.NextTile(s.plane, s.target, s.rng.Uint32())
		if arrived {
			s.planeDone = s.plane == s.target
		} else {
			s.plane = next
		}
	}
}

// fire launches a shell from the ship toward the target along a lofted arc
func (s *Sandbox) fire() {
	s.arc.ComputeControlPoints(s.ship, s.target, true)
	s.shell = s.ship
	s.shellFlying = s.ship != s.target
}

func (s *Sandbox) handleResize() {
	w, h := s.screen.Size()
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	s.rebuildMap()
	s.newRun()
}

func (s *Sandbox) draw() {
	s.screen.Clear()

	for y := 0; y < s.grid.Height(); y++ {
		for x := 0; x < s.grid.Width(); x++ {
			style := styleWall
			if s.layout.IsShore(x, y) {
				style = styleShore
			} else if s.layout.IsPassage(x, y) {
				style = styleWater
			}
			s.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	// Frontiers of the running search; coarse tiles cover a 2×2 block
	if s.active != nil && s.path == nil {
		scale := 1
		if s.hierarchical {
			scale = navigation.DownsampleFactor
		}
		g := s.gridOf(scale)
		s.active.Visited(func(r navigation.TileRef, forward bool) {
			style := styleBackward
			if forward {
				style = styleForward
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					s.screen.SetContent(g.X(r)*scale+dx, g.Y(r)*scale+dy, ' ', nil, style)
				}
			}
		})
	}

	for _, r := range s.path {
		s.screen.SetContent(s.grid.X(r), s.grid.Y(r), '·', nil, stylePath)
	}

	s.screen.SetContent(s.grid.X(s.target), s.grid.Y(s.target), 'X', nil, styleTarget)
	if s.shellFlying {
		s.screen.SetContent(s.grid.X(s.shell), s.grid.Y(s.shell), '*', nil, styleShell)
	}
	s.screen.SetContent(s.grid.X(s.plane), s.grid.Y(s.plane), '^', nil, stylePlane)
	s.screen.SetContent(s.grid.X(s.ship), s.grid.Y(s.ship), '@', nil, styleShip)

	mode := "direct"
	if s.hierarchical {
		mode = "hierarchical"
	}
	s.drawText(0, s.height-2, fmt.Sprintf(" tick %d  search %s  ship %v  plane done %v ",
		s.tick, mode, s.lastResult, s.planeDone), styleStatus)
	s.drawText(0, s.height-1, " space: new run  f: fire shell  m: new map  h: toggle hierarchical  q/esc: quit ", styleStatus)

	s.screen.Show()
}

func (s *Sandbox) gridOf(scale int) *navigation.Grid {
	if scale == 1 {
		return s.grid
	}
	return s.coarse
}

func (s *Sandbox) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= s.height {
		return
	}
	for i, r := range []rune(text) {
		if x+i >= s.width {
			return
		}
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (s *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			s.newRun()
		case 'f':
			s.fire()
		case 'm':
			s.rebuildMap()
			s.newRun()
		case 'h':
			s.hierarchical = !s.hierarchical
			s.newRun()
		}

	case *tcell.EventResize:
		s.screen.Sync()
		s.handleResize()
	}

	return true
}

func (s *Sandbox) run() {
	ticker := time.NewTicker(time.Duration(s.cfg.Sandbox.TickMs) * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- s.screen.PollEvent()
		}
	}()

	s.draw()
	for {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return
			}
			if !s.handleInput(ev) {
				return
			}
			s.draw()

		case <-ticker.C:
			s.update()
			s.draw()
		}
	}
}

func (s *Sandbox) cleanup() {
	if s.audioInit {
		speaker.Close()
	}
	s.screen.Fini()
}

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	sandbox, err := NewSandbox(cfg, *seedFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer sandbox.cleanup()

	sandbox.run()
}
