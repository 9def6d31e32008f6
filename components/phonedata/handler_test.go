package phonedata

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-phoneinput/pkg/intltel"
)

var sampleCountries = []intltel.CountryData{
	{Name: "Germany", ISO2: "de", DialCode: "49"},
	{Name: "Guernsey", ISO2: "gg", DialCode: "44"},
	{Name: "United Kingdom", ISO2: "gb", DialCode: "44"},
	{Name: "United States", ISO2: "us", DialCode: "1"},
}

type countriesPayload struct {
	Data []intltel.CountryData `json:"data"`
}

type validationPayload struct {
	Data ValidationResult `json:"data"`
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, res *http.Response, out any) {
	t.Helper()
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestCountriesHandler_SearchPrefersPrefixMatches(t *testing.T) {
	h := CountriesHandler(WithCountries(sampleCountries))

	req := httptest.NewRequest(http.MethodGet, "/api/phone/countries?q=united", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload countriesPayload
	decode(t, rec.Result(), &payload)
	want := []intltel.CountryData{sampleCountries[2], sampleCountries[3]}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("unexpected countries (-want +got):\n%s", diff)
	}
}

func TestCountriesHandler_DialCodeAndLimit(t *testing.T) {
	h := CountriesHandler(WithCountries(sampleCountries), WithMaxLimit(1))

	req := httptest.NewRequest(http.MethodGet, "/api/phone/countries?q=%2B44&limit=10", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload countriesPayload
	decode(t, rec.Result(), &payload)
	if len(payload.Data) != 1 || payload.Data[0].ISO2 != "gg" {
		t.Fatalf("expected first dial-code match only, got %#v", payload.Data)
	}
}

func TestCountriesHandler_EmptyQueryModes(t *testing.T) {
	top := CountriesHandler(WithCountries(sampleCountries), WithDefaultLimit(2))
	rec := httptest.NewRecorder()
	top.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/phone/countries", nil))
	var payload countriesPayload
	decode(t, rec.Result(), &payload)
	if len(payload.Data) != 2 {
		t.Fatalf("expected top two countries, got %#v", payload.Data)
	}

	none := CountriesHandler(WithCountries(sampleCountries), WithEmptySearchMode(EmptySearchNone))
	rec = httptest.NewRecorder()
	none.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/phone/countries", nil))
	payload = countriesPayload{}
	decode(t, rec.Result(), &payload)
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestCountriesHandler_DefaultListIncludesUS(t *testing.T) {
	h := CountriesHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/phone/countries?q=us", nil))
	var payload countriesPayload
	decode(t, rec.Result(), &payload)
	if len(payload.Data) == 0 || payload.Data[0].ISO2 != "us" {
		t.Fatalf("expected exact iso2 match first, got %#v", payload.Data)
	}
}

func TestCountriesHandler_MethodNotAllowed(t *testing.T) {
	h := CountriesHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/phone/countries", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestGuard_UsesStatusError(t *testing.T) {
	h := CountriesHandler(WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized, Err: errors.New("no session")}
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/phone/countries", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	h := CountriesHandler(WithCountries(sampleCountries), WithRateLimit(0.001, 1), WithLogger(quietLogger()))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/phone/countries", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if diff := cmp.Diff([]int{http.StatusOK, http.StatusTooManyRequests}, codes); diff != "" {
		t.Fatalf("unexpected status codes (-want +got):\n%s", diff)
	}

	other := httptest.NewRequest(http.MethodGet, "/api/phone/countries", nil)
	other.RemoteAddr = "192.0.2.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected separate bucket per client, got %d", rec.Code)
	}
}

func TestValidateHandler_GetValidNumber(t *testing.T) {
	h := ValidateHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/phone/validate?number=%2B14155552671", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload validationPayload
	decode(t, rec.Result(), &payload)
	want := ValidationResult{
		IsValid: true,
		Number:  "+14155552671",
		Country: &intltel.CountryData{Name: "United States", ISO2: "us", DialCode: "1"},
	}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestValidateHandler_PostJSONTooShort(t *testing.T) {
	h := ValidateHandler()
	body := strings.NewReader(`{"number":"415","country":"us"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/phone/validate", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload validationPayload
	decode(t, rec.Result(), &payload)
	if payload.Data.IsValid || payload.Data.Error != "Too short" {
		t.Fatalf("unexpected result %#v", payload.Data)
	}
	if payload.Data.ErrorCode == nil || *payload.Data.ErrorCode != intltel.TooShort {
		t.Fatalf("expected TOO_SHORT code, got %v", payload.Data.ErrorCode)
	}
}

func TestValidateHandler_PostFormLetters(t *testing.T) {
	h := ValidateHandler()
	form := url.Values{"number": {"call me"}}
	req := httptest.NewRequest(http.MethodPost, "/api/phone/validate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload validationPayload
	decode(t, rec.Result(), &payload)
	if payload.Data.IsValid || payload.Data.Error != "Phone number cannot contain letters" {
		t.Fatalf("unexpected result %#v", payload.Data)
	}
}

func TestValidateHandler_BadRequests(t *testing.T) {
	h := ValidateHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/phone/validate", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing number, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/phone/validate", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestMetricsCountRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	h := ValidateHandler(WithMetrics(metrics))

	for _, number := range []string{"%2B14155552671", "%2B1415"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/phone/validate?number="+number, nil))
	}

	if got := counterValue(t, reg, "phoneinput_requests_total", "code", "200"); got != 2 {
		t.Fatalf("expected 2 requests counted, got %v", got)
	}
	if got := counterValue(t, reg, "phoneinput_validations_total", "result", "valid"); got != 1 {
		t.Fatalf("expected 1 valid, got %v", got)
	}
	if got := counterValue(t, reg, "phoneinput_validations_total", "result", "invalid"); got != 1 {
		t.Fatalf("expected 1 invalid, got %v", got)
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					total += metric.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}
