// Package app implements the application layer for matchview.
package app

import (
	"context"
	"io"
	"net/url"
	"os"

	"go.trai.ch/matchview/internal/adapters/detector"
	"go.trai.ch/matchview/internal/adapters/diagramcache"
	"go.trai.ch/matchview/internal/adapters/mcrit"
	"go.trai.ch/matchview/internal/adapters/resultcache"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
	"go.trai.ch/matchview/internal/engine/views"
	"go.trai.ch/zerr"
)

// Options are the global settings of one invocation.
type Options struct {
	// ConfigPath overrides configuration discovery.
	ConfigPath string
	// OutputMode is one of "auto", "pretty", "plain" or "json".
	OutputMode string
	// Trace logs finished spans and other debug records.
	Trace bool
}

// Backends are the collaborators built from the loaded configuration.
type Backends struct {
	Client   ports.MatchingClient
	Cache    ports.ResultCache
	Diagrams ports.DiagramCache
}

// BackendFactory builds the backends for a configuration.
type BackendFactory func(cfg *domain.Config, renderer ports.DiagramRenderer) (*Backends, error)

// configurableLogger is implemented by loggers that can switch format and level.
type configurableLogger interface {
	SetJSON(enable bool)
	SetDebug(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	tracer       ports.Tracer
	renderer     ports.DiagramRenderer
	backends     BackendFactory
	stdout       io.Writer
	options      Options
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	tracer ports.Tracer,
	renderer ports.DiagramRenderer,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		tracer:       tracer,
		renderer:     renderer,
		backends:     NewBackends,
		stdout:       os.Stdout,
	}
}

// WithBackends replaces the factory used to build backends.
// This is primarily used for testing to inject mocks.
func (a *App) WithBackends(factory BackendFactory) *App {
	a.backends = factory
	return a
}

// WithOutput redirects presented views.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// Configure applies the global options of the invocation.
func (a *App) Configure(opts Options) {
	a.options = opts
	if l, ok := a.logger.(configurableLogger); ok {
		l.SetJSON(a.mode() == detector.ModeJSON)
		l.SetDebug(opts.Trace)
	}
}

// NewBackends builds the HTTP client and the on-disk caches below cfg.Cache.Dir.
func NewBackends(cfg *domain.Config, renderer ports.DiagramRenderer) (*Backends, error) {
	store, err := resultcache.NewStore(cfg.Cache.Dir)
	if err != nil {
		return nil, err
	}
	diagrams, err := diagramcache.New(cfg.Cache.Dir, renderer)
	if err != nil {
		return nil, err
	}
	return &Backends{
		Client:   mcrit.NewClient(cfg.Server),
		Cache:    store,
		Diagrams: diagrams,
	}, nil
}

// session is the state shared by the operations of one invocation.
type session struct {
	cfg       *domain.Config
	backends  *Backends
	presenter presenter
}

func (a *App) open() (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}
	cfg, err := a.configLoader.Load(cwd, a.options.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	backends, err := a.backends(cfg, a.renderer)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to initialize backends")
	}
	return &session{
		cfg:       cfg,
		backends:  backends,
		presenter: newPresenter(a.mode(), a.stdout),
	}, nil
}

func (a *App) mode() detector.OutputMode {
	return detector.ResolveMode(detector.DetectEnvironment(), a.options.OutputMode)
}

// Result resolves a job result and presents the view selected by values.
func (a *App) Result(ctx context.Context, jobID string, values url.Values) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	service := views.NewResultService(
		s.backends.Client,
		s.backends.Cache,
		s.backends.Diagrams,
		a.tracer,
		a.logger,
		views.WithLimits(s.cfg.Pagination),
		views.WithSingleFlight(s.cfg.Cache.SingleFlight),
	)
	view, err := service.Resolve(ctx, jobID, values)
	if err != nil {
		return err
	}
	return s.presenter.View(view, values)
}

// Search runs a multi-entity search.
func (a *App) Search(ctx context.Context, query string, values url.Values) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	results, err := a.searchService(s).Search(ctx, query, values)
	if err != nil {
		return err
	}
	return s.presenter.Search(results)
}

// Family presents a family and a page of its samples.
func (a *App) Family(ctx context.Context, familyID int, query string, values url.Values) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	detail, err := a.entityService(s).Family(ctx, familyID, query, values)
	if err != nil {
		return err
	}
	return s.presenter.Family(detail)
}

// Sample presents a sample, a page of its functions and the jobs naming it.
func (a *App) Sample(ctx context.Context, sampleID int, query string, values url.Values) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	detail, err := a.entityService(s).Sample(ctx, sampleID, query, values)
	if err != nil {
		return err
	}
	return s.presenter.Sample(detail)
}

// Function presents a function and its pichash match summary.
func (a *App) Function(ctx context.Context, functionID int) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	detail, err := a.entityService(s).Function(ctx, functionID)
	if err != nil {
		return err
	}
	return s.presenter.Function(detail)
}

// PicBlockHash presents the match summary of a picblockhash.
func (a *App) PicBlockHash(ctx context.Context, hash uint64) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	summary, err := a.entityService(s).PicBlockHash(ctx, hash)
	if err != nil {
		return err
	}
	return s.presenter.PicHashSummary(hash, summary)
}

// Job presents a job and its child jobs.
func (a *App) Job(ctx context.Context, jobID string) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	overview, err := views.NewJobService(s.backends.Client, a.logger, s.cfg.Pagination).Overview(ctx, jobID)
	if err != nil {
		return err
	}
	return s.presenter.Job(overview)
}

// Jobs presents the sections of the job queue.
func (a *App) Jobs(ctx context.Context, query string, values url.Values) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	listing, err := views.NewJobService(s.backends.Client, a.logger, s.cfg.Pagination).List(ctx, query, values)
	if err != nil {
		return err
	}
	return s.presenter.Jobs(listing)
}

func (a *App) searchService(s *session) *views.SearchService {
	return views.NewSearchService(s.backends.Client, a.tracer, a.logger, s.cfg.Pagination)
}

func (a *App) entityService(s *session) *views.EntityService {
	return views.NewEntityService(s.backends.Client, a.searchService(s))
}
