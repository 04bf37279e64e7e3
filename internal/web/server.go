// Package web serves the calculator as an HTML page and a small JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/maypok86/otter/v2"

	"sleepcalc/internal/config"
	"sleepcalc/internal/cycle"
)

// Two modes times every minute of the day.
const cacheSize = 2 * 24 * 60

type Options struct {
	Version string

	// Now defaults to time.Now.
	Now func() time.Time

	// AccessLog receives one line per request when config.AccessLog is set.
	AccessLog io.Writer
}

type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	opts   Options
	tpl    *template.Template

	// Result lists are shared between requests and must not be modified.
	cache *otter.Cache[string, []cycle.Entry]
}

func New(cfg *config.Config, logger *slog.Logger, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		opts:   opts,
		tpl:    template.Must(template.New("page").Funcs(funcs).Parse(pageHTML)),
		cache: otter.Must(&otter.Options[string, []cycle.Entry]{
			MaximumSize: cacheSize,
		}),
	}
}

// Router returns the routes without middleware.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID)

	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/calc", s.handleCalc).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/bedtimes", s.handleBedtimes).Methods(http.MethodGet)
	api.HandleFunc("/wake-times", s.handleWakeTimes).Methods(http.MethodGet)
	return r
}

// Handler returns the full handler: routes, gzip, panic recovery and the
// access log.
func (s *Server) Handler() http.Handler {
	var h http.Handler = handlers.CompressHandler(s.Router())
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError)),
	)(h)
	if s.cfg.AccessLog && s.opts.AccessLog != nil {
		h = handlers.LoggingHandler(s.opts.AccessLog, h)
	}
	return h
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "port", s.cfg.Port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// calculate memoises cycle.Calculate per mode and clock.
func (s *Server) calculate(mode cycle.Mode, at cycle.Clock) ([]cycle.Entry, error) {
	key := string(mode) + "/" + at.String()
	if entries, ok := s.cache.GetIfPresent(key); ok {
		return entries, nil
	}
	entries, err := cycle.Calculate(mode, at)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, entries)
	return entries, nil
}

// now returns the demo override from the request, then from config, then the
// real clock.
func (s *Server) now(r *http.Request) (cycle.Clock, error) {
	if demo := r.URL.Query().Get("demoTime"); demo != "" {
		return cycle.ParseClock(demo)
	}
	return s.cfg.Now(s.opts.Now()), nil
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// ListenAddrs returns the URLs the server is reachable on: loopback plus
// every IPv4 address of an interface that is up.
func ListenAddrs(port int) []string {
	out := []string{fmt.Sprintf("http://127.0.0.1:%d/", port)}

	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			ip, _, err := net.ParseCIDR(a.String())
			if err != nil || ip == nil || ip.IsLoopback() || ip.To4() == nil {
				continue
			}
			out = append(out, fmt.Sprintf("http://%s:%d/", ip.String(), port))
		}
	}
	return out
}
