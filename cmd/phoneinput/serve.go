package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-phoneinput"
	"github.com/goliatone/go-phoneinput/components/phonedata"
	"github.com/goliatone/go-phoneinput/pkg/live"
	"github.com/goliatone/go-phoneinput/pkg/page"
	"github.com/goliatone/go-phoneinput/pkg/widget"
)

type serveConfig struct {
	addr          string
	basePath      string
	livePath      string
	rate          float64
	burst         int
	proxies       []string
	metrics       bool
	shutdownGrace time.Duration
}

func serveCmd(g *globalFlags) *cobra.Command {
	cfg := serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the phone data API, live widget sessions and assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := g.logger(cmd)
			if err != nil {
				return err
			}
			handler, err := newServer(cfg, logger, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return listen(ctx, cfg, handler, logger)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&cfg.addr, "addr", ":8080", "listen address")
	flags.StringVar(&cfg.basePath, "base-path", "", "prefix for the phone data API")
	flags.StringVar(&cfg.livePath, "live-path", "/live", "websocket endpoint for live widget sessions")
	flags.Float64Var(&cfg.rate, "rate", 0, "per-client requests per second for the API (0 disables)")
	flags.IntVar(&cfg.burst, "burst", 10, "per-client burst for the API rate limit")
	flags.StringSliceVar(&cfg.proxies, "trusted-proxies", nil, "CIDRs whose X-Forwarded-For is used to identify rate limited clients")
	flags.BoolVar(&cfg.metrics, "metrics", true, "expose prometheus metrics on /metrics")
	flags.DurationVar(&cfg.shutdownGrace, "shutdown-grace", 10*time.Second, "graceful shutdown timeout")
	return cmd
}

// newServer wires the router. reg receives the API metrics and, when enabled,
// is served on /metrics.
func newServer(cfg serveConfig, logger *slog.Logger, reg *prometheus.Registry) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	opts := []phonedata.OptionFn{
		phonedata.WithLogger(logger),
		phonedata.WithMetrics(phonedata.NewMetrics(reg)),
	}
	if cfg.rate > 0 {
		opts = append(opts, phonedata.WithRateLimit(rate.Limit(cfg.rate), cfg.burst))
	}
	if len(cfg.proxies) > 0 {
		prefixes, err := parsePrefixes(cfg.proxies)
		if err != nil {
			return nil, err
		}
		opts = append(opts, phonedata.WithClientKey(phonedata.TrustedProxyKey(prefixes...)))
	}
	routes, err := phonedata.RegisterRoutes(r, cfg.basePath, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("phone data routes", "countries", routes.Countries, "validate", routes.Validate)

	livePath := cfg.livePath
	if livePath == "" {
		livePath = "/live"
	}
	r.Handle(livePath, live.NewHandler(
		live.WithLogger(logger),
		live.WithPageOptions(page.WithLoader(page.NopLoader)),
	))

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(phoneinput.AssetsFS())))

	if cfg.metrics {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		doc, err := phoneinput.RenderHTML(req.Context(), live.QueryAttributes(req), widget.WithLogger(logger))
		if err != nil {
			logger.Error("render demo page", "err", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(doc))
	})
	return r, nil
}

// parsePrefixes accepts CIDRs and bare addresses.
func parsePrefixes(values []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(values))
	for _, raw := range values {
		if prefix, err := netip.ParsePrefix(raw); err == nil {
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --trusted-proxies entry %q", raw)
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func listen(ctx context.Context, cfg serveConfig, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
