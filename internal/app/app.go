package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/docker/go-units"

	"github.com/thushan/llmsource/internal/adapter/lister"
	"github.com/thushan/llmsource/internal/adapter/store"
	"github.com/thushan/llmsource/internal/app/setup"
	"github.com/thushan/llmsource/internal/config"
	"github.com/thushan/llmsource/internal/core/domain"
	"github.com/thushan/llmsource/internal/core/ports"
	"github.com/thushan/llmsource/internal/logger"
	"github.com/thushan/llmsource/pkg/eventbus"
)

// Application owns the stores and adapters shared by every panel
type Application struct {
	config  *config.Config
	logger  *logger.StyledLogger
	bus     *eventbus.EventBus[domain.StoreEvent]
	sources *store.SourceStore
	models  *store.MemoryModelStore
	lister  ports.ModelLister
	mapper  *setup.Mapper
	queries *setup.QueryGroup
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option overrides a collaborator, mostly useful in tests
type Option func(*Application)

func WithLister(l ports.ModelLister) Option {
	return func(a *Application) { a.lister = l }
}

func New(cfg *config.Config, logger *logger.StyledLogger, opts ...Option) (*Application, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	domain.SetDefaultHostURL(cfg.Defaults.HostURL)

	bus := eventbus.New[domain.StoreEvent]()
	app := &Application{
		config:  cfg,
		logger:  logger,
		bus:     bus,
		sources: store.NewSourceStore(bus, logger),
		models:  store.NewMemoryModelStore(bus, logger),
		queries: setup.NewQueryGroup(),
		mapper: setup.NewMapper(setup.MapperOptions{
			Description:   cfg.Models.Description,
			ContextTokens: cfg.Models.ContextTokens,
		}),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.lister == nil {
		maxBytes, err := cfg.Discovery.MaxResponseBytes()
		if err != nil {
			return nil, err
		}
		l, err := lister.New(lister.Options{
			Client:          cfg.Discovery.Client,
			UserAgent:       cfg.Discovery.UserAgent,
			MaxResponseSize: maxBytes,
			Timeout:         cfg.Discovery.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create model lister: %w", err)
		}
		app.lister = l

		logger.Debug("Model lister ready",
			"client", cfg.Discovery.Client,
			"timeout", cfg.Discovery.Timeout,
			"max_response_size", units.HumanSize(float64(maxBytes)))
	}

	return app, nil
}

// Start loads persisted setups, seeds configured sources the file doesn't
// know about and starts watching the setup file.
func (a *Application) Start(ctx context.Context) error {
	if a.config.Store.File != "" {
		if err := a.sources.AttachFile(a.config.Store.File); err != nil {
			return err
		}
	}

	if err := a.seedSources(ctx); err != nil {
		return err
	}

	if a.config.Store.File != "" && a.config.Store.Watch {
		watchCtx, cancel := context.WithCancel(ctx)
		a.cancel = cancel
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := a.sources.Watch(watchCtx); err != nil {
				a.logger.Warn("Setup file watcher stopped", "error", err)
			}
		}()
	}

	a.logger.InfoWithCount("Sources ready", len(a.sources.Sources()), "client", a.config.Discovery.Client)
	return nil
}

func (a *Application) Stop(_ context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
	a.bus.Shutdown()
	return nil
}

func (a *Application) seedSources(ctx context.Context) error {
	for _, sc := range a.config.Sources {
		id := domain.SourceID(sc.ID)

		if _, err := a.sources.Source(id); err == nil {
			// the persisted setup wins, config only fills a setup that was never saved
			if sc.HostURL != nil && !a.hasStoredSetup(id) {
				if err := a.sources.UpdateSetup(ctx, id, domain.HostURLPatch(*sc.HostURL)); err != nil {
					return err
				}
			}
			continue
		}

		source := &domain.Source{
			ID:       id,
			Label:    sc.Label,
			VendorID: domain.VendorID(sc.Vendor),
		}
		if sc.HostURL != nil {
			source.Setup = &domain.LocalAISetup{HostURL: *sc.HostURL}
		}
		if err := a.sources.AddSource(ctx, source); err != nil {
			return fmt.Errorf("failed to add source %s: %w", sc.ID, err)
		}
	}
	return nil
}

func (a *Application) hasStoredSetup(id domain.SourceID) bool {
	source, err := a.sources.Source(id)
	return err == nil && source.Setup != nil
}

// NewPanel builds a setup panel bound to the shared stores
func (a *Application) NewPanel(id domain.SourceID) (*setup.Panel, error) {
	return setup.NewPanel(id, a.sources, a.models, a.lister,
		setup.WithMapper(a.mapper),
		setup.WithQueryGroup(a.queries),
		setup.WithFetchTimeout(a.config.Discovery.Timeout),
		setup.WithLogger(a.logger),
	)
}

// ListerMetrics reports the lister's call counters when the client keeps any
func (a *Application) ListerMetrics() (lister.ListMetrics, bool) {
	if r, ok := a.lister.(lister.MetricsReporter); ok {
		return r.GetMetrics(), true
	}
	return lister.ListMetrics{}, false
}

func (a *Application) Sources() *store.SourceStore {
	return a.sources
}

func (a *Application) Models() *store.MemoryModelStore {
	return a.models
}

func (a *Application) Events() *eventbus.EventBus[domain.StoreEvent] {
	return a.bus
}

func (a *Application) Config() *config.Config {
	return a.config
}

func (a *Application) Logger() *logger.StyledLogger {
	return a.logger
}
