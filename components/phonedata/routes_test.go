package phonedata

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPaths_JoinsBasePath(t *testing.T) {
	got := MountPaths("/admin")
	if got.Countries != "/admin/api/phone/countries" || got.Validate != "/admin/api/phone/validate" {
		t.Fatalf("unexpected mount paths: %#v", got)
	}
	got = MountPaths("admin/", WithCountriesPath("countries"))
	if got.Countries != "/admin/countries" {
		t.Fatalf("unexpected countries path: %q", got.Countries)
	}
}

func TestRegisterRoutes_RegistersHandlers(t *testing.T) {
	mux := http.NewServeMux()
	routes, err := New(WithCountries(sampleCountries)).RegisterRoutes(mux, "/admin")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, target := range []string{routes.Countries + "?q=ger", routes.Validate + "?number=%2B14155552671"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", target, rec.Code)
		}
	}
}

func TestRegisterRoutes_RejectsSharedPath(t *testing.T) {
	_, err := RegisterRoutes(http.NewServeMux(), "", WithCountriesPath("/x"), WithValidatePath("/x"))
	if err == nil {
		t.Fatalf("expected error for shared path")
	}
	if _, err := RegisterRoutes(nil, ""); err == nil {
		t.Fatalf("expected error for missing mux")
	}
}
