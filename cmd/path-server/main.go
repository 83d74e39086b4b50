package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lixenwraith/tilepath/config"
	"github.com/lixenwraith/tilepath/mapgen"
	"github.com/lixenwraith/tilepath/server"
)

var (
	configFlag = flag.String("config", "", "TOML config file (defaults built in)")
	addrFlag   = flag.String("addr", "", "Listen address, overrides server.addr")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}
	if cfg.Server.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	start := time.Now()
	layout := cfg.Map.BuildLayout()
	grid := mapgen.Build(layout)
	log.Printf("map %s %dx%d built in %v, %d navigable tiles",
		cfg.Map.Layout, grid.Width(), grid.Height(), time.Since(start), grid.NavigableCount())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(cfg, grid, reg).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
