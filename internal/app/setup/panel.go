package setup

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thushan/llmsource/internal/adapter/query"
	"github.com/thushan/llmsource/internal/core/domain"
	"github.com/thushan/llmsource/internal/core/ports"
	"github.com/thushan/llmsource/internal/logger"
	"github.com/thushan/llmsource/internal/util"
)

const DefaultFetchTimeout = 30 * time.Second

type Option func(*Panel)

func WithMapper(mapper *Mapper) Option {
	return func(p *Panel) { p.mapper = mapper }
}

// WithQueryGroup shares in-flight dedup between panels. Each panel still
// judges staleness for itself, a joined call that the starting panel gave up
// on is retried once.
func WithQueryGroup(group *QueryGroup) Option {
	return func(p *Panel) { p.queries = group }
}

// WithFetchTimeout bounds a single fetch, zero or less disables the bound
func WithFetchTimeout(timeout time.Duration) Option {
	return func(p *Panel) { p.timeout = timeout }
}

func WithLogger(logger *logger.StyledLogger) Option {
	return func(p *Panel) { p.logger = logger }
}

type inflight struct {
	cancel context.CancelFunc
	task   *Task
	host   string
}

// Panel drives the setup of one LocalAI source: it edits the host URL,
// decides whether fetching is allowed and fetches the server's models into
// the model store. It holds no setup state of its own.
type Panel struct {
	sources    ports.SourceStore
	models     ports.ModelStore
	lister     ports.ModelLister
	mapper     *Mapper
	queries    *QueryGroup
	logger     *logger.StyledLogger
	lifeCtx    context.Context
	lifeCancel context.CancelFunc
	current    *inflight
	sourceID   domain.SourceID
	timeout    time.Duration
	mu         sync.Mutex
	mounted    bool
	closed     bool
}

func NewPanel(sourceID domain.SourceID, sources ports.SourceStore, models ports.ModelStore, lister ports.ModelLister, opts ...Option) (*Panel, error) {
	if _, err := sources.Source(sourceID); err != nil {
		return nil, err
	}

	lifeCtx, lifeCancel := context.WithCancel(context.Background())
	p := &Panel{
		sourceID:   sourceID,
		sources:    sources,
		models:     models,
		lister:     lister,
		timeout:    DefaultFetchTimeout,
		lifeCtx:    lifeCtx,
		lifeCancel: lifeCancel,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.mapper == nil {
		p.mapper = NewMapper(DefaultMapperOptions())
	}
	if p.queries == nil {
		p.queries = NewQueryGroup()
	}
	if p.logger == nil {
		p.logger = logger.NewDiscard()
	}
	p.logger = p.logger.With("source", string(sourceID))

	return p, nil
}

func (p *Panel) SourceID() domain.SourceID {
	return p.sourceID
}

// HostURL is the current, normalised host URL of the source
func (p *Panel) HostURL() string {
	setup, err := p.sources.Setup(p.sourceID)
	if err != nil {
		return ""
	}
	return setup.HostURL
}

// SetHostURL writes straight through to the source store. A fetch running
// against a different host is cancelled so its response can't land.
func (p *Panel) SetHostURL(ctx context.Context, hostURL string) error {
	if err := p.sources.UpdateSetup(ctx, p.sourceID, domain.HostURLPatch(hostURL)); err != nil {
		return err
	}

	p.mu.Lock()
	if p.current != nil && p.current.host != hostURL {
		p.logger.Debug("Host changed mid-fetch, cancelling", "host", p.current.host, "request_id", p.current.task.requestID)
		p.abandonLocked()
	}
	p.mu.Unlock()
	return nil
}

func (p *Panel) IsValid() bool {
	return util.IsValidHostURL(p.HostURL())
}

func (p *Panel) IsFetching() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

// CanFetch is the enablement of the fetch button
func (p *Panel) CanFetch() bool {
	return p.IsValid() && !p.IsFetching()
}

// Models are the descriptors currently stored for this source
func (p *Panel) Models() []*domain.LLM {
	return p.models.LLMsForSource(p.sourceID)
}

// ClearModels drops every descriptor of this source, the next Mount or
// Refetch starts from an empty list
func (p *Panel) ClearModels(ctx context.Context) int {
	removed := p.models.RemoveSourceLLMs(ctx, p.sourceID)
	if removed > 0 {
		p.logger.InfoWithCount("Cleared models", removed)
	}
	return removed
}

// Mount fires the automatic fetch, at most once per panel lifetime and only
// when the source has no models yet and the host URL is valid. Returns nil
// when nothing was started.
func (p *Panel) Mount() *Task {
	p.mu.Lock()
	if p.mounted || p.closed {
		p.mu.Unlock()
		return nil
	}
	p.mounted = true
	p.mu.Unlock()

	if p.models.CountForSource(p.sourceID) > 0 {
		p.logger.Debug("Source already has models, skipping auto fetch")
		return nil
	}

	hostURL := p.HostURL()
	if !util.IsValidHostURL(hostURL) {
		p.logger.Debug("Host URL not valid, skipping auto fetch", "host", hostURL)
		return nil
	}

	return p.startFetch(hostURL)
}

// Refetch is the manual trigger. While a fetch for the same host is in
// flight the caller joins it instead of starting another one.
func (p *Panel) Refetch() (*Task, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, domain.ErrPanelClosed
	}

	hostURL := p.HostURL()
	if !util.IsValidHostURL(hostURL) {
		return nil, domain.ErrFetchDisabled
	}

	return p.startFetch(hostURL), nil
}

// Close cancels whatever is in flight, nothing it returns will be stored
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	if p.current != nil {
		p.abandonLocked()
	}
	p.lifeCancel()
}

// abandonLocked cancels the current fetch and makes sure nobody joins it later
func (p *Panel) abandonLocked() {
	p.current.cancel()
	p.queries.Forget(p.queryKey(p.current.host))
	p.current = nil
}

func (p *Panel) queryKey(hostURL string) string {
	return string(p.sourceID) + "|" + hostURL
}

func (p *Panel) startFetch(hostURL string) *Task {
	p.mu.Lock()
	if p.current != nil && p.current.host == hostURL {
		task := p.current.task
		p.mu.Unlock()
		return task
	}
	if p.current != nil {
		p.abandonLocked()
	}

	var fetchCtx context.Context
	var cancel context.CancelFunc
	if p.timeout > 0 {
		fetchCtx, cancel = context.WithTimeout(p.lifeCtx, p.timeout)
	} else {
		fetchCtx, cancel = context.WithCancel(p.lifeCtx)
	}

	fl := &inflight{
		host:   hostURL,
		cancel: cancel,
		task:   newTask(hostURL, uuid.NewString()),
	}
	p.current = fl
	p.mu.Unlock()

	go p.run(fetchCtx, fl)
	return fl.task
}

func (p *Panel) run(ctx context.Context, fl *inflight) {
	defer fl.cancel()

	log := p.logger.WithRequestID(fl.task.requestID)
	startTime := time.Now()
	log.InfoWithHost("Fetching models from", fl.host)

	res := p.list(ctx, fl.host)

	var llms []*domain.LLM
	err := res.Err
	if err == nil {
		if err = p.commit(ctx, fl, res.Value); err == nil {
			llms = res.Value.LLMs
		}
	}

	p.mu.Lock()
	if p.current == fl {
		p.current = nil
	}
	p.mu.Unlock()

	result := FetchResult{
		LLMs:      llms,
		Err:       err,
		Shared:    res.Shared,
		Host:      fl.host,
		RequestID: fl.task.requestID,
	}

	// failures stop here, the panel never surfaces them
	switch {
	case err == nil:
		log.InfoWithCount("Fetched models", len(llms), "host", fl.host, "latency", time.Since(startTime))
	case errors.Is(err, domain.ErrStaleResponse), errors.Is(err, context.Canceled):
		log.Debug("Fetch abandoned", "host", fl.host, "error", err)
	default:
		log.Warn("Fetch failed", "host", fl.host, "error", err)
	}

	fl.task.complete(result)
}

// list runs the remote call through the query group. A call joined from
// another panel dies with that panel, so while ctx is still live it is
// started again once under this panel's own ctx.
func (p *Panel) list(ctx context.Context, hostURL string) query.Result[*Batch] {
	key := p.queryKey(hostURL)
	fn := func() (*Batch, error) {
		remote, err := p.lister.ListModels(ctx, domain.LocalAIAccess(hostURL))
		if err != nil {
			return nil, err
		}

		source, err := p.sources.Source(p.sourceID)
		if err != nil {
			return nil, err
		}
		return &Batch{LLMs: p.mapper.ToLLMs(remote, source)}, nil
	}

	res := p.queries.Do(ctx, key, fn)
	if res.Shared && errors.Is(res.Err, context.Canceled) && ctx.Err() == nil && p.HostURL() == hostURL {
		p.logger.Debug("Joined fetch was cancelled, retrying", "host", hostURL)
		res = p.queries.Do(ctx, key, fn)
	}
	return res
}

// commit appends the batch unless the fetch went stale for this panel. The
// panel lock is held across the append so a host change can't slip in between.
func (p *Panel) commit(ctx context.Context, fl *inflight, batch *Batch) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.current != fl || ctx.Err() != nil || p.HostURL() != fl.host {
		return domain.ErrStaleResponse
	}

	return batch.commit(func(llms []*domain.LLM) error {
		return p.models.AddLLMs(ctx, llms)
	})
}
