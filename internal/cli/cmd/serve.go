package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/bezier/internal/cli"
	"github.com/bnema/bezier/internal/domain/entity"
	"github.com/bnema/bezier/internal/infrastructure/api"
	"github.com/bnema/bezier/internal/infrastructure/config"
	"github.com/bnema/bezier/internal/logging"
)

const shutdownTimeout = 10 * time.Second

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stores over HTTP",
	Long: `Run the HTTP API, the change-event websocket and, when enabled, the
Prometheus metrics endpoint. Idle tabs are hibernated on the configured
interval. Edits to the config file are picked up without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides server.listen)")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := GetApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithComponent(ctx, "serve")
	log := logging.FromContext(ctx)

	addr := a.Config.Server.Listen
	if serveListen != "" {
		addr = serveListen
	}

	deps := api.Deps{
		Browser:     a.Browser,
		Themes:      a.Themes,
		Extensions:  a.Extensions,
		Permissions: a.Permissions,
		Palette:     a.Palette,
		Analytics:   a.Analytics,
		Transfers:   a.Transfers,
		Logger:      *log,
		StartTime:   time.Now(),
	}
	if a.Config.Server.EnableMetrics {
		deps.Metrics = api.NewMetrics()
	}
	server := api.New(addr, deps)

	hib := newHibernationLoop(a, a.Config.Hibernation)
	a.Manager.OnConfigChange(func(cfg *config.Config) {
		zerolog.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
		hib.update(cfg.Hibernation)
		log.Info().Msg("configuration reloaded")
	})
	if err := a.Manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watching disabled")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(nil)
	})
	g.Go(func() error {
		hib.run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return server.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// hibernationLoop sweeps idle tabs on a ticker whose settings follow the
// config file.
type hibernationLoop struct {
	app *cli.App

	mu      sync.Mutex
	cfg     config.HibernationConfig
	changed chan struct{}
}

func newHibernationLoop(a *cli.App, cfg config.HibernationConfig) *hibernationLoop {
	return &hibernationLoop{app: a, cfg: cfg, changed: make(chan struct{}, 1)}
}

func (h *hibernationLoop) update(cfg config.HibernationConfig) {
	h.mu.Lock()
	h.cfg = cfg
	h.mu.Unlock()
	select {
	case h.changed <- struct{}{}:
	default:
	}
}

func (h *hibernationLoop) settings() (bool, time.Duration, []entity.HibernationRule) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg.Enabled, h.cfg.Interval(), h.cfg.Rules
}

func (h *hibernationLoop) run(ctx context.Context) {
	log := logging.FromContext(ctx)
	for {
		enabled, interval, rules := h.settings()

		var tick <-chan time.Time
		var ticker *time.Ticker
		if enabled && interval > 0 {
			ticker = time.NewTicker(interval)
			tick = ticker.C
		}

		select {
		case <-ctx.Done():
			if ticker != nil {
				ticker.Stop()
			}
			return
		case <-h.changed:
		case <-tick:
			out := h.app.Hibernate.Execute(ctx, rules)
			if len(out.Hibernated)+len(out.Closed) > 0 {
				log.Info().
					Int("hibernated", len(out.Hibernated)).
					Int("closed", len(out.Closed)).
					Msg("hibernation sweep")
			}
		}
		if ticker != nil {
			ticker.Stop()
		}
	}
}
