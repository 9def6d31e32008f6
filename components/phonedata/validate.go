package phonedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"unicode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-phoneinput/pkg/intltel"
	"github.com/goliatone/go-phoneinput/pkg/widget"
)

const maxBodyBytes = 64 << 10

// ErrNumberRequired is returned when a validation request has no number.
var ErrNumberRequired = errors.New("phonedata: number is required")

// ValidateRequest is the validation input.
type ValidateRequest struct {
	Number  string `json:"number"`
	Country string `json:"country"`
}

// ValidationResult mirrors what the widget reports for the same input.
// ErrorCode is set only for library rejections.
type ValidationResult struct {
	IsValid   bool                     `json:"isValid"`
	Error     string                   `json:"error,omitempty"`
	ErrorCode *intltel.ValidationError `json:"errorCode,omitempty"`
	Number    string                   `json:"number"`
	Country   *intltel.CountryData     `json:"country,omitempty"`
}

type validationResponse struct {
	Data ValidationResult `json:"data"`
}

// Validate checks number the way the widget does, using country when the
// number has no international prefix.
func Validate(lib intltel.Library, number, country string) (ValidationResult, error) {
	messages := widget.DefaultMessages()
	number = strings.TrimSpace(number)
	if number == "" {
		return ValidationResult{}, ErrNumberRequired
	}
	if strings.IndexFunc(number, unicode.IsLetter) >= 0 {
		return ValidationResult{IsValid: false, Error: messages.Letters}, nil
	}

	ev, err := intltel.Evaluate(lib, number, country)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("phonedata: evaluate: %w", err)
	}
	out := ValidationResult{
		IsValid: ev.Valid,
		Number:  ev.Number,
		Country: ev.Country,
	}
	if !ev.Valid {
		code := ev.Code
		out.ErrorCode = &code
		out.Error = messages.ForCode(code)
	}
	return out, nil
}

// ValidateHandler builds the validation handler with default options plus
// any overrides.
func ValidateHandler(fns ...OptionFn) http.Handler {
	return ValidateHandlerWithOptions(NewOptions(fns...))
}

// ValidateHandlerWithOptions builds the validation handler from a
// pre-constructed Options value.
func ValidateHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	limiter := newClientLimiter(opts)
	return instrument(opts, routeValidate, limiter, []string{http.MethodGet, http.MethodPost},
		func(ctx context.Context, w http.ResponseWriter, r *http.Request) int {
			req, err := decodeValidateRequest(w, r, opts)
			if err != nil {
				return writeError(w, err)
			}

			result, err := Validate(opts.Library, req.Number, req.Country)
			if err != nil {
				if errors.Is(err, ErrNumberRequired) {
					return writeError(w, StatusError{Code: http.StatusBadRequest, Err: err})
				}
				opts.Logger.Error("phone validation failed", "err", err)
				return writeError(w, err)
			}

			trace.SpanFromContext(ctx).SetAttributes(
				attribute.Bool("phone.valid", result.IsValid),
				attribute.String("phone.country", req.Country),
			)
			opts.Metrics.observeValidation(result.IsValid)
			return writeJSON(w, r, http.StatusOK, validationResponse{Data: result})
		})
}

func decodeValidateRequest(w http.ResponseWriter, r *http.Request, opts Options) (ValidateRequest, error) {
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		return ValidateRequest{Number: q.Get(opts.NumberParam), Country: q.Get(opts.CountryParam)}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req ValidateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return ValidateRequest{}, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("phonedata: decode body: %w", err)}
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return ValidateRequest{}, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("phonedata: parse form: %w", err)}
	}
	return ValidateRequest{Number: r.Form.Get(opts.NumberParam), Country: r.Form.Get(opts.CountryParam)}, nil
}
