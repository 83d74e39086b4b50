package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/tilepath/config"
	"github.com/lixenwraith/tilepath/metrics"
	"github.com/lixenwraith/tilepath/navigation"
)

var (
	ErrEmptySources   = errors.New("no sources")
	ErrTooManySources = errors.New("too many sources")
	ErrOutOfBounds    = errors.New("coordinate out of bounds")
)

// Coord is an (x,y) pair on the full grid, encoded as a 2-element JSON array
type Coord [2]int

type PathRequest struct {
	Sources      []Coord `json:"sources"`
	Destination  Coord   `json:"destination"`
	Hierarchical *bool   `json:"hierarchical,omitempty"` // nil = server default
}

type PathResponse struct {
	Result       navigation.Result `json:"result"`
	Path         []Coord           `json:"path"`
	AdvanceCalls int               `json:"advanceCalls"`
	Hierarchical bool              `json:"hierarchical"`
}

type StepRequest struct {
	Tile        Coord  `json:"tile"`
	Destination Coord  `json:"destination"`
	Seed        uint32 `json:"seed"`
}

type StepResponse struct {
	Result navigation.Result `json:"result"` // NextTile, or Completed once on the destination
	Tile   Coord             `json:"tile"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers path queries against one map held at two resolutions
type Server struct {
	cfg     config.Config
	full    *navigation.Grid
	coarse  *navigation.Grid
	air     *navigation.DirectStepPathfinder
	metrics *metrics.Search
	reg     *prometheus.Registry
	engine  *gin.Engine
}

// New builds the coarse grid, registers metrics on reg and wires routes
func New(cfg config.Config, full *navigation.Grid, reg *prometheus.Registry) *Server {
	s := &Server{
		cfg:     cfg,
		full:    full,
		coarse:  navigation.Downsample(full),
		air:     navigation.NewDirectStepPathfinder(full),
		metrics: metrics.NewSearch(reg),
		reg:     reg,
	}

	e := gin.New()
	e.Use(gin.Logger(), gin.Recovery())
	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/path", s.handlePath)
	e.POST("/v1/step", s.handleStep)
	e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	s.engine = e

	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"width":     s.full.Width(),
		"height":    s.full.Height(),
		"navigable": s.full.NavigableCount(),
	})
}

func (s *Server) handlePath(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	sources, dst, err := s.resolvePath(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	hierarchical := s.cfg.Search.Hierarchical
	if req.Hierarchical != nil {
		hierarchical = *req.Hierarchical
	}

	resp, err := s.FindPath(c.Request.Context(), sources, dst, hierarchical)
	if err != nil {
		// Client went away; nothing useful to send
		log.Printf("path search abandoned: %v", err)
		c.Status(http.StatusRequestTimeout)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleStep(c *gin.Context) {
	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.checkCoord("tile", req.Tile); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.checkCoord("destination", req.Destination); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	tile := s.full.Ref(req.Tile[0], req.Tile[1])
	dst := s.full.Ref(req.Destination[0], req.Destination[1])
	next, arrived := s.air.NextTile(tile, dst, req.Seed)
	s.metrics.ObserveStep(arrived)

	// An axis-aligned unit can land on the idle side of the coin and report arrival early;
	// it stays put and the client retries with a fresh seed
	resp := StepResponse{Result: navigation.NextTile, Tile: s.coord(next)}
	if arrived {
		resp.Tile = req.Tile
		if tile == dst {
			resp.Result = navigation.Completed
		}
	}
	c.JSON(http.StatusOK, resp)
}

// FindPath drives one search to a terminal result, one Advance per iteration of the loop
// Returns ctx.Err() if the context ends first; the search is simply dropped
func (s *Server) FindPath(ctx context.Context, sources []navigation.TileRef, dst navigation.TileRef, hierarchical bool) (PathResponse, error) {
	var (
		search navigation.Search
		inner  *navigation.BidirectionalSearch
		kind   = "direct"
	)
	iters, calls := s.cfg.Search.IterationsPerAdvance, s.cfg.Search.MaxAdvanceCalls
	if hierarchical {
		h := navigation.NewHierarchicalSearch(s.full, s.coarse, sources, dst, iters, calls)
		search, inner, kind = h, h.Inner(), "hierarchical"
	} else {
		b := navigation.NewBidirectionalSearch(sources, dst, iters, calls, s.full)
		search, inner = b, b
	}

	result := navigation.Pending
	for result == navigation.Pending {
		if err := ctx.Err(); err != nil {
			return PathResponse{}, err
		}
		result = search.Advance()
	}

	resp := PathResponse{
		Result:       result,
		Path:         []Coord{},
		AdvanceCalls: inner.Stats().AdvanceCalls,
		Hierarchical: hierarchical,
	}
	if result == navigation.Completed {
		for _, r := range search.ReconstructPath() {
			resp.Path = append(resp.Path, s.coord(r))
		}
	}
	s.metrics.ObserveSearch(kind, result, inner.Stats(), len(resp.Path))
	return resp, nil
}

// resolvePath validates a request; the navigation core trusts its inputs
func (s *Server) resolvePath(req PathRequest) ([]navigation.TileRef, navigation.TileRef, error) {
	if len(req.Sources) == 0 {
		return nil, 0, ErrEmptySources
	}
	if len(req.Sources) > s.cfg.Server.MaxSources {
		return nil, 0, fmt.Errorf("%w: %d > %d", ErrTooManySources, len(req.Sources), s.cfg.Server.MaxSources)
	}

	sources := make([]navigation.TileRef, len(req.Sources))
	for i, src := range req.Sources {
		if err := s.checkCoord(fmt.Sprintf("sources[%d]", i), src); err != nil {
			return nil, 0, err
		}
		sources[i] = s.full.Ref(src[0], src[1])
	}
	if err := s.checkCoord("destination", req.Destination); err != nil {
		return nil, 0, err
	}
	return sources, s.full.Ref(req.Destination[0], req.Destination[1]), nil
}

func (s *Server) checkCoord(field string, c Coord) error {
	if !s.full.InBounds(c[0], c[1]) {
		return fmt.Errorf("%w: %s (%d,%d) outside %dx%d", ErrOutOfBounds, field, c[0], c[1], s.full.Width(), s.full.Height())
	}
	return nil
}

func (s *Server) coord(r navigation.TileRef) Coord {
	return Coord{s.full.X(r), s.full.Y(r)}
}
