package suggest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/reportassist/internal/async"
	"github.com/dshills/reportassist/internal/ghost"
	"github.com/dshills/reportassist/internal/logging"
)

// DefaultIdleDelay is the quiet period before a fetch.
const DefaultIdleDelay = 2 * time.Second

// Result is a completed fetch, delivered on the UI thread.
type Result struct {
	RequestID string
	// Revision is the document revision the request was built from.
	Revision    uint64
	Suggestions []ghost.Suggestion
	Err         error
}

// Snapshot captures what a request needs from the editor. It runs on the
// UI thread when the idle timer fires.
type Snapshot func() (text string, revision uint64)

// FetcherConfig configures a Fetcher.
type FetcherConfig struct {
	Client  Client
	Study   StudyContext
	Enabled bool
	// IdleDelay is the quiet period before a fetch.
	IdleDelay time.Duration
	// Timeout bounds one request.
	Timeout   time.Duration
	Scheduler async.Scheduler
	Poster    async.Poster
	Logger    *logging.Logger
}

// Fetcher issues single-flight suggestion requests when the editor has
// been idle. It never decides whether suggestions should be shown; Gate
// and Deliver belong to the caller.
type Fetcher struct {
	client  Client
	study   StudyContext
	enabled bool
	timeout time.Duration
	logger  *logging.Logger

	idle   *async.IdleTimer
	flight *async.Flight[Result]

	snapshot Snapshot
	gate     func() bool
	deliver  func(Result)
}

// NewFetcher creates a fetcher. snapshot reads the document; gate is
// consulted when the timer fires and a false result skips the fetch;
// deliver receives every result that was not superseded.
func NewFetcher(cfg FetcherConfig, snapshot Snapshot, gate func() bool, deliver func(Result)) *Fetcher {
	if cfg.IdleDelay <= 0 {
		cfg.IdleDelay = DefaultIdleDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Poster == nil {
		cfg.Poster = async.Inline
	}
	f := &Fetcher{
		client:   cfg.Client,
		study:    cfg.Study,
		enabled:  cfg.Enabled && cfg.Client != nil,
		timeout:  cfg.Timeout,
		logger:   logging.OrNull(cfg.Logger).WithComponent("suggest"),
		flight:   async.NewFlight[Result](cfg.Poster),
		snapshot: snapshot,
		gate:     gate,
		deliver:  deliver,
	}
	f.idle = async.NewIdleTimer(cfg.IdleDelay, cfg.Scheduler, cfg.Poster, f.onIdle)
	return f
}

// Enabled reports whether idle fetching is on.
func (f *Fetcher) Enabled() bool {
	return f.enabled
}

// SetStudy replaces the metadata sent with future requests.
func (f *Fetcher) SetStudy(s StudyContext) {
	f.study = s
}

// Touch restarts the idle period.
func (f *Fetcher) Touch() {
	if !f.enabled {
		return
	}
	f.idle.Reset()
}

// Pause stops the idle timer without fetching.
func (f *Fetcher) Pause() {
	f.idle.Stop()
}

// IdlePending reports whether the idle timer is running.
func (f *Fetcher) IdlePending() bool {
	return f.idle.Pending()
}

// Cancel drops the outstanding request, if any.
func (f *Fetcher) Cancel() {
	if f.flight.Pending() {
		f.logger.Debug("cancelling in-flight request")
	}
	f.flight.Cancel()
}

// InFlight reports whether a request is outstanding.
func (f *Fetcher) InFlight() bool {
	return f.flight.Pending()
}

// Stop pauses the timer and cancels any request.
func (f *Fetcher) Stop() {
	f.Pause()
	f.Cancel()
}

func (f *Fetcher) onIdle() {
	if f.gate != nil && !f.gate() {
		return
	}
	f.Fetch()
}

// Fetch issues a request now, superseding any outstanding one.
func (f *Fetcher) Fetch() async.Token {
	if f.client == nil {
		return 0
	}
	text, rev := f.snapshot()
	req := Request{
		ID:         uuid.New().String(),
		ReportText: text,
		Study:      f.study,
	}
	log := f.logger.WithField("request", req.ID)
	log.Debug("fetching suggestions for revision %d", rev)

	client, timeout := f.client, f.timeout
	return f.flight.Start(context.Background(), func(ctx context.Context) (Result, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		items, err := client.Suggest(ctx, req)
		return Result{RequestID: req.ID, Revision: rev, Suggestions: items}, err
	}, func(res Result, err error) {
		if err != nil {
			log.Warn("suggestion fetch failed: %v", err)
			res = Result{RequestID: req.ID, Revision: rev, Err: err}
		} else {
			log.Debug("received %d suggestions", len(res.Suggestions))
		}
		if f.deliver != nil {
			f.deliver(res)
		}
	})
}
