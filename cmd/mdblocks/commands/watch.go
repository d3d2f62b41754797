package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/mdblocks/internal/logfields"
	"git.home.luguber.info/inful/mdblocks/internal/metrics"
	"git.home.luguber.info/inful/mdblocks/internal/render"
)

// WatchCmd renders a directory and keeps the output in sync.
type WatchCmd struct {
	Dir      string        `arg:"" name:"dir" default:"." help:"Directory of Markdown sources to watch." type:"existingdir"`
	Output   string        `short:"o" name:"output" required:"" help:"Output directory for the rendered HTML." type:"path"`
	Debounce time.Duration `name:"debounce" default:"300ms" help:"Quiet period before changed files are re-rendered."`
}

func (w *WatchCmd) Run(g *Global, _ *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if g.Config.Metrics.Enabled {
		reg := prom.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec = metrics.NewPrometheusRecorder(reg)

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.HTTPHandler(reg))
		srv := &http.Server{Addr: g.Config.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			g.Logger.Info("Serving metrics", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				g.Logger.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	conv, err := g.NewConverter(rec)
	if err != nil {
		return err
	}
	renderer := render.New(conv, w.Output, render.WithRecorder(rec), render.WithLogger(g.Logger))
	if err := renderer.Watch(ctx, w.Dir, render.WatchOptions{Debounce: w.Debounce}); err != nil {
		return err
	}
	g.Logger.Info("Watch stopped")
	return nil
}
