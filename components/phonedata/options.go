package phonedata

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-phoneinput/pkg/intltel"
)

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	CountriesPath   string
	ValidatePath    string
	SearchParam     string
	LimitParam      string
	NumberParam     string
	CountryParam    string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	// RateLimit and Burst enable a per-client token bucket. A zero RateLimit
	// disables limiting.
	RateLimit rate.Limit
	Burst     int
	// ClientKey names the client a request is limited as. It defaults to
	// RemoteAddrKey; use TrustedProxyKey behind a known proxy.
	ClientKey ClientKeyFunc
	// MaxClients and ClientIdle bound the bucket table.
	MaxClients int
	ClientIdle time.Duration

	Countries []intltel.CountryData
	Library   intltel.Library
	Metrics   *Metrics
	Tracer    trace.Tracer
	Logger    *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		CountriesPath:   "/api/phone/countries",
		ValidatePath:    "/api/phone/validate",
		SearchParam:     "q",
		LimitParam:      "limit",
		NumberParam:     "number",
		CountryParam:    "country",
		DefaultLimit:    50,
		MaxLimit:        250,
		EmptySearchMode: EmptySearchTop,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	def := DefaultOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = def.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = def.MaxLimit
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = def.EmptySearchMode
	}
	if opts.CountriesPath == "" {
		opts.CountriesPath = def.CountriesPath
	}
	if opts.ValidatePath == "" {
		opts.ValidatePath = def.ValidatePath
	}
	if opts.SearchParam == "" {
		opts.SearchParam = def.SearchParam
	}
	if opts.LimitParam == "" {
		opts.LimitParam = def.LimitParam
	}
	if opts.NumberParam == "" {
		opts.NumberParam = def.NumberParam
	}
	if opts.CountryParam == "" {
		opts.CountryParam = def.CountryParam
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.Countries != nil {
		opts.Countries = append([]intltel.CountryData{}, opts.Countries...)
	}
	if opts.Library == nil {
		opts.Library = intltel.NewLibrary()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}

func WithCountriesPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CountriesPath = path
	}
}

func WithValidatePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValidatePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithRateLimit allows limit requests per second per client, with bursts of
// up to burst requests.
func WithRateLimit(limit rate.Limit, burst int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RateLimit = limit
		o.Burst = burst
	}
}

// WithClientKey sets how rate limited clients are identified.
func WithClientKey(fn ClientKeyFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ClientKey = fn
	}
}

// WithClientLimits bounds how many client buckets are kept and how long an
// idle bucket survives.
func WithClientLimits(maxClients int, idle time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxClients = maxClients
		o.ClientIdle = idle
	}
}

func WithCountries(countries []intltel.CountryData) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if countries == nil {
			o.Countries = nil
			return
		}
		o.Countries = append([]intltel.CountryData{}, countries...)
	}
}

func WithLibrary(lib intltel.Library) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Library = lib
	}
}

func WithMetrics(m *Metrics) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Metrics = m
	}
}

func WithTracer(tracer trace.Tracer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Tracer = tracer
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
