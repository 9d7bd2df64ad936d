// Package cli wires configuration, storage and stores for the commands.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/application/usecase"
	"github.com/bnema/bezier/internal/cli/styles"
	"github.com/bnema/bezier/internal/domain/build"
	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/infrastructure/cache"
	"github.com/bnema/bezier/internal/infrastructure/config"
	"github.com/bnema/bezier/internal/infrastructure/filesystem"
	"github.com/bnema/bezier/internal/infrastructure/permission"
	"github.com/bnema/bezier/internal/infrastructure/transfer"
	"github.com/bnema/bezier/internal/logging"
)

const paletteCacheSize = 64

// Options select how the App is built.
type Options struct {
	// ConfigFile overrides the XDG config file location.
	ConfigFile string

	// Ephemeral forces the in-memory backend.
	Ephemeral bool
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	Logger    zerolog.Logger

	Repo        repository.StateRepository
	Persister   *store.Persister
	Browser     *store.BrowserStore
	Themes      *store.ThemeStore
	Extensions  *store.ExtensionStore
	Permissions *store.PermissionGate

	// Use cases
	Palette   *usecase.SearchCommandsUseCase
	Analytics *usecase.HistoryAnalyticsUseCase
	Transfers *usecase.RunTransferUseCase
	Hibernate *usecase.HibernateTabsUseCase

	ctx context.Context
}

// NewApp creates a new CLI application with all dependencies.
func NewApp(opts Options) (*App, error) {
	mgr, err := newManager(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()
	if opts.Ephemeral {
		cfg.Storage.Backend = config.StorageMemory
	}

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	repo, err := OpenRepository(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.Debug().Str("backend", string(cfg.Storage.Backend)).Msg("state storage opened")

	persister := store.NewPersister(ctx, repo, cfg.Storage.FlushDelay())

	browser := store.NewBrowserStore(persister, store.Options{
		MaxHistoryEntries: cfg.History.MaxEntries,
		SearchTemplate:    cfg.Search.Engine,
		LoadDelay:         cfg.Tabs.LoadDelay(),
	})
	browser.Load(ctx)

	themes := store.NewThemeStore(persister, nil, nil)
	themes.Load(ctx)

	extensions := store.NewExtensionStore(persister, nil, nil)
	extensions.Load(ctx)

	transfers := usecase.NewRunTransferUseCase(
		browser,
		transfer.NewFetcher(cfg.Downloads.Timeout()),
		filesystem.NewDirSink(cfg.Downloads.Dir),
		nil,
		cfg.Downloads.ReportInterval(),
	)

	palette := usecase.NewSearchCommandsUseCase(browser, cfg.Search.Threshold)
	palette.CacheResults(cache.NewLRU[usecase.SearchCommandsInput, *usecase.SearchCommandsOutput](paletteCacheSize), browser)

	return &App{
		Config:      cfg,
		Manager:     mgr,
		Theme:       styles.NewTheme(themes.CurrentTheme().Colors),
		BuildInfo:   build.Current(),
		Logger:      logger,
		Repo:        repo,
		Persister:   persister,
		Browser:     browser,
		Themes:      themes,
		Extensions:  extensions,
		Permissions: store.NewPermissionGate(permission.NewPolicyPrompter(cfg.Server.Grant)),
		Palette:     palette,
		Analytics:   usecase.NewHistoryAnalyticsUseCase(browser, nil),
		Transfers:   transfers,
		Hibernate:   usecase.NewHibernateTabsUseCase(browser, nil),
		ctx:         ctx,
	}, nil
}

func newManager(configFile string) (*config.Manager, error) {
	if configFile != "" {
		return config.NewManagerWithFile(configFile)
	}
	return config.NewManager()
}

// Close flushes pending writes and releases all resources.
func (a *App) Close() error {
	a.Browser.Close()
	a.Persister.Close()
	return a.Repo.Close()
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
