package phonedata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-phoneinput/pkg/intltel"
)

const tracerName = "github.com/goliatone/go-phoneinput/components/phonedata"

const (
	routeCountries = "countries"
	routeValidate  = "validate"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type countriesResponse struct {
	Data []intltel.CountryData `json:"data"`
}

// CountriesHandler builds the country search handler with default options
// plus any overrides.
func CountriesHandler(fns ...OptionFn) http.Handler {
	return CountriesHandlerWithOptions(NewOptions(fns...))
}

// CountriesHandlerWithOptions builds the country search handler from a
// pre-constructed Options value.
func CountriesHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	limiter := newClientLimiter(opts)
	return instrument(opts, routeCountries, limiter, []string{http.MethodGet, http.MethodHead},
		func(ctx context.Context, w http.ResponseWriter, r *http.Request) int {
			countries := opts.Countries
			if countries == nil {
				countries = intltel.Countries()
			}

			query := r.URL.Query().Get(opts.SearchParam)
			limit := parseInt(r.URL.Query().Get(opts.LimitParam))

			results := Search(countries, query, limit, opts)
			if results == nil {
				results = []intltel.CountryData{}
			}
			trace.SpanFromContext(ctx).SetAttributes(
				attribute.String("phone.query", query),
				attribute.Int("phone.results", len(results)),
			)
			return writeJSON(w, r, http.StatusOK, countriesResponse{Data: results})
		})
}

type handlerFunc func(ctx context.Context, w http.ResponseWriter, r *http.Request) int

// instrument wraps a route with method checks, guard, rate limit, tracing and
// metrics. fn returns the status code it wrote.
func instrument(opts Options, route string, limiter *clientLimiter, methods []string, fn handlerFunc) http.Handler {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	allow := strings.Join(methods, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		ctx, span := tracer.Start(r.Context(), "phonedata."+route)
		defer span.End()
		r = r.WithContext(ctx)

		code := serve(ctx, w, r, opts, limiter, methods, allow, fn)
		span.SetAttributes(attribute.Int("http.status_code", code))
		opts.Metrics.observeRequest(route, code)
	})
}

func serve(ctx context.Context, w http.ResponseWriter, r *http.Request, opts Options, limiter *clientLimiter, methods []string, allow string, fn handlerFunc) int {
	allowed := false
	for _, m := range methods {
		if r.Method == m {
			allowed = true
			break
		}
	}
	if !allowed {
		w.Header().Set("Allow", allow)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return http.StatusMethodNotAllowed
	}

	if opts.Guard != nil {
		if err := opts.Guard(r); err != nil {
			return writeGuardError(w, err)
		}
	}
	if !limiter.allow(r) {
		opts.Logger.Warn("phone data rate limit exceeded", "client", limiter.key(r), "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		return http.StatusTooManyRequests
	}
	return fn(ctx, w, r)
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) int {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return code
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
	return code
}

func writeError(w http.ResponseWriter, err error) int {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	message := http.StatusText(code)
	if code < http.StatusInternalServerError && err != nil {
		message = err.Error()
	}
	http.Error(w, message, code)
	return code
}

func writeGuardError(w http.ResponseWriter, err error) int {
	if w == nil {
		return http.StatusForbidden
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return http.StatusForbidden
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
	return code
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
