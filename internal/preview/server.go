// Package preview serves a generated site locally and rebuilds it whenever
// its sources change.
package preview

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/manifest"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/site"
	"git.home.luguber.info/inful/mdsite/internal/template"
)

// StatusPath serves the result of the last build as JSON.
const StatusPath = "/__mdsite/status"

const shutdownTimeout = 5 * time.Second

// Server is a preview server bound to one project configuration.
type Server struct {
	cfg          *config.Config
	gen          *site.Generator
	registry     *prom.Registry
	status       *buildStatus
	errorAdapter *errors.HTTPErrorAdapter

	// rebuildReq holds at most one pending rebuild request.
	rebuildReq chan struct{}

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithRegistry registers build metrics with reg and serves it on /metrics.
func WithRegistry(reg *prom.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// New creates a preview server for cfg.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:          cfg,
		registry:     prom.NewRegistry(),
		status:       &buildStatus{},
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
		rebuildReq:   make(chan struct{}, 1),
		ready:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.gen = site.NewGenerator(cfg,
		site.WithRecorder(metrics.NewPrometheusRecorder(s.registry)),
		site.WithManifest(manifest.New()))
	return s
}

// Run performs the initial build, then serves the site, watches the
// sources and rebuilds until ctx is canceled. A failed build does not stop
// the server; the error is reported on StatusPath.
func Run(ctx context.Context, cfg *config.Config, opts ...Option) error {
	return New(cfg, opts...).Run(ctx)
}

// Handler routes the generated site, /metrics and StatusPath.
func (s *Server) Handler() http.Handler {
	base := template.NormalizeBasePath(s.cfg.BasePath)
	files := http.FileServer(http.Dir(s.cfg.OutputDir))

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
	mux.HandleFunc(StatusPath, s.handleStatus)
	if base == "/" {
		mux.Handle("/", files)
	} else {
		mux.Handle(base, http.StripPrefix(strings.TrimSuffix(base, "/"), files))
		mux.Handle("/", http.RedirectHandler(base, http.StatusFound))
	}
	return mux
}

// Build runs one site build and records its outcome.
func (s *Server) Build(ctx context.Context) error {
	report, err := s.gen.Build(ctx)
	s.status.record(report, err)
	return err
}

// Addr returns the listen address once the server is accepting
// connections, or an empty string before that.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Ready is closed once the server accepts connections and watches sources.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// RequestRebuild queues a rebuild unless one is already pending.
func (s *Server) RequestRebuild() {
	select {
	case s.rebuildReq <- struct{}{}:
	default:
	}
}

// Run serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Build(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	ln, err := net.Listen("tcp", s.cfg.Preview.Addr())
	if err != nil {
		return errors.RuntimeError("listen").WithCause(err).
			WithContext("addr", s.cfg.Preview.Addr()).
			Build()
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	slog.Info("Preview server listening", logfields.URL("http://"+ln.Addr().String()+template.NormalizeBasePath(s.cfg.BasePath)))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		_ = srv.Close()
		return errors.RuntimeError("create file watcher").WithCause(err).Build()
	}
	defer func() { _ = watcher.Close() }()
	ws := newWatchSet(
		[]string{s.cfg.ContentDir, s.cfg.StaticDir},
		[]string{s.cfg.Template},
		[]string{s.cfg.OutputDir})
	ws.attach(watcher)

	scheduler, err := s.startScheduler()
	if err != nil {
		_ = srv.Close()
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.rebuildWorker(ctx)
	}()

	trigger, stopDebounce := debouncer(s.cfg.Preview.DebounceDuration(), s.RequestRebuild)
	close(s.ready)

	err = s.loop(ctx, watcher, ws, trigger, serveErr)

	stopDebounce()
	if scheduler != nil {
		if serr := scheduler.Shutdown(); serr != nil {
			slog.Warn("Scheduler shutdown failed", logfields.Error(serr))
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(serr))
	}
	wg.Wait()
	return err
}

func (s *Server) loop(ctx context.Context, watcher *fsnotify.Watcher, ws *watchSet, trigger func(), serveErr <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down preview server")
			return nil
		case err := <-serveErr:
			return errors.RuntimeError("serve").WithCause(err).Build()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ws.handleEvent(watcher, ev) {
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// rebuildWorker runs queued rebuilds one at a time. A request arriving
// during a build stays queued and runs once the build is done.
func (s *Server) rebuildWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.rebuildReq:
			slog.Info("Change detected, rebuilding site")
			if err := s.Build(ctx); err != nil {
				slog.Warn("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// startScheduler schedules periodic full rebuilds when configured.
func (s *Server) startScheduler() (gocron.Scheduler, error) {
	interval := s.cfg.Preview.RebuildEvery()
	if interval <= 0 {
		//nolint:nilnil // nil scheduler means periodic rebuilds are off.
		return nil, nil
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.RequestRebuild),
		gocron.WithName("periodic-rebuild"),
	); err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}
	scheduler.Start()
	slog.Info("Scheduled periodic rebuild", slog.Duration("interval", interval))
	return scheduler, nil
}

// debouncer returns a trigger that calls fn once delay has passed without
// another trigger, and a stop function that cancels a pending call.
func debouncer(delay time.Duration, fn func()) (trigger func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, fn)
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}
