// Command dashsync-demo drives two demo cards on a page and pushes them
// to a renderer: an interval plot under polar coordinates and a stacked
// interval plot under theta coordinates, both fed by synthetic series.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/c360/dashsync/config"
	"github.com/c360/dashsync/metric"
	"github.com/c360/dashsync/page"
	"github.com/c360/dashsync/pkg/retry"
	"github.com/c360/dashsync/plot"
	"github.com/c360/dashsync/synth"
	"github.com/c360/dashsync/table"
	"github.com/c360/dashsync/transport"
	"github.com/c360/dashsync/transport/capture"
	"github.com/c360/dashsync/transport/natspub"
	"github.com/c360/dashsync/transport/wsclient"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults apply when empty)")
	route := flag.String("page", "/demo", "page route to publish")
	updates := flag.Int("updates", 5, "number of data updates to push")
	interval := flag.Duration("interval", time.Second, "delay between updates")
	flag.Parse()

	if err := run(*configPath, *route, *updates, *interval); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, route string, updates int, interval time.Duration) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := metric.NewMetricsRegistry()
	if cfg.Metrics.Enabled {
		srv := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Stop(shutdownCtx)
		}()
		logger.Info("metrics server started", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
	}

	tr, err := buildTransport(cfg.Transport, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := tr.Close(); err != nil {
			logger.Warn("transport close failed", "error", err)
		}
	}()

	site := page.NewRegistry(tr, logger, registry.CoreMetrics())
	defer site.Close()

	pg := site.Page(route)
	polar, theta, err := addDemoCards(pg)
	if err != nil {
		return err
	}

	categorical := synth.NewFakeCategoricalSeries(nil)
	grouped := synth.NewFakeMultiCategoricalSeries(5, nil)

	for i := 0; i < updates; i++ {
		if err := ctx.Err(); err != nil {
			logger.Info("interrupted", "updates_pushed", i)
			return nil
		}

		if err := polar.SetData(categoricalRows(categorical, 24)); err != nil {
			return err
		}
		if err := theta.SetData(groupedRows(grouped, 10)); err != nil {
			return err
		}
		if err := pg.Sync(ctx); err != nil {
			logger.Warn("sync reported errors", "error", err)
		}

		if c, ok := tr.(*capture.Capture); ok {
			if batch, ok := c.Last(); ok {
				logger.Info("captured batch", "id", batch.ID, "cards", len(batch.Cards))
			}
		}

		if i < updates-1 {
			select {
			case <-ctx.Done():
			case <-time.After(interval):
			}
		}
	}

	logger.Info("demo complete", "updates", updates, "page", route)
	return nil
}

// addDemoCards builds the two cards the demo publishes and returns their
// live handles.
func addDemoCards(pg *page.Page) (polar, theta *page.Card, err error) {
	polarTable, err := table.New([]string{"product", "price"}, 24)
	if err != nil {
		return nil, nil, err
	}
	polarSpec, err := plot.Build([]plot.Mark{{
		Coord: plot.CoordPolar,
		Type:  plot.MarkInterval,
		Channels: plot.Channels{
			plot.ChannelX: plot.FieldRef("product"),
			plot.ChannelY: plot.FieldRef("price"),
		},
		YMin: plot.Bound(0),
	}})
	if err != nil {
		return nil, nil, err
	}
	polar, err = pg.Add("polar-example", page.CardDef{
		Layout: "1 1 4 5",
		Title:  "Interval, polar",
		Spec:   polarSpec,
		Data:   polarTable,
	})
	if err != nil {
		return nil, nil, err
	}

	thetaTable, err := table.New([]string{"country", "product", "price"}, 50)
	if err != nil {
		return nil, nil, err
	}
	thetaSpec, err := plot.Build([]plot.Mark{{
		Coord: plot.CoordTheta,
		Type:  plot.MarkInterval,
		Channels: plot.Channels{
			plot.ChannelX:     plot.FieldRef("product"),
			plot.ChannelY:     plot.FieldRef("price"),
			plot.ChannelColor: plot.FieldRef("country"),
		},
		Stack: plot.StackAuto,
		YMin:  plot.Bound(0),
	}})
	if err != nil {
		return nil, nil, err
	}
	theta, err = pg.Add("theta-example", page.CardDef{
		Layout: "5 1 4 5",
		Title:  "Intervals, theta, stacked",
		Spec:   thetaSpec,
		Data:   thetaTable,
	})
	if err != nil {
		return nil, nil, err
	}

	return polar, theta, nil
}

func categoricalRows(f *synth.FakeCategoricalSeries, n int) []table.Row {
	rows := make([]table.Row, 0, n)
	for i := 0; i < n; i++ {
		p := f.Next()
		rows = append(rows, table.Row{p.Category, p.Value})
	}
	return rows
}

func groupedRows(f *synth.FakeMultiCategoricalSeries, n int) []table.Row {
	rows := make([]table.Row, 0, n*len(f.Groups()))
	for i := 0; i < n; i++ {
		for _, p := range f.Next() {
			rows = append(rows, table.Row{p.Group, p.Category, p.Value})
		}
	}
	return rows
}

func buildTransport(cfg config.TransportConfig, logger *slog.Logger) (transport.Transport, error) {
	switch cfg.Kind {
	case config.TransportCapture:
		return capture.New(), nil
	case config.TransportWebSocket:
		wsCfg := wsclient.DefaultConfig(cfg.URL)
		wsCfg.Logger = logger
		if timeout, err := cfg.WriteTimeoutDuration(); err != nil {
			return nil, err
		} else if timeout > 0 {
			wsCfg.WriteTimeout = timeout
		}
		if cfg.MaxAttempts > 0 {
			wsCfg.Retry.MaxAttempts = cfg.MaxAttempts
		}
		return wsclient.New(wsCfg)
	case config.TransportNATS:
		natsCfg := natspub.DefaultConfig(cfg.URL)
		natsCfg.Logger = logger
		if cfg.SubjectPrefix != "" {
			natsCfg.SubjectPrefix = cfg.SubjectPrefix
		}
		if cfg.MaxAttempts > 0 {
			natsCfg.Retry = retry.Config{
				MaxAttempts:  cfg.MaxAttempts,
				InitialDelay: 100 * time.Millisecond,
				MaxDelay:     2 * time.Second,
				Multiplier:   2.0,
				AddJitter:    true,
			}
		}
		return natspub.New(natsCfg)
	default:
		return nil, fmt.Errorf("unknown transport kind %q", cfg.Kind)
	}
}
