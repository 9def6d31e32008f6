package phoneinput

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-phoneinput/pkg/openapi"
	"github.com/goliatone/go-phoneinput/pkg/testsupport"
	"github.com/goliatone/go-phoneinput/pkg/widget"
)

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(context.Background(), map[string]string{
		"name":            "mobile",
		"value":           "+14155552671",
		"initial-country": "us",
		"required":        "",
	}, widget.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{
		`<link`,
		`id="intl-tel-input-styles"`,
		`<style id="phone-input-styles"`,
		`<script id="intl-tel-input-script"`,
		`<phone-input`,
		`name="mobile-display"`,
		`type="hidden" name="mobile" value="+14155552671"`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in document:\n%s", fragment, out)
		}
	}
}

func TestAssetsAndTemplates(t *testing.T) {
	if _, err := fs.ReadFile(AssetsFS(), "phone-input.css"); err != nil {
		t.Fatalf("expected stylesheet in assets: %v", err)
	}
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/phone_input.tmpl"); err != nil {
		t.Fatalf("expected built-in template: %v", err)
	}
}

func TestDiscoverPhoneFieldsFromFileAndHTTP(t *testing.T) {
	ctx := context.Background()
	fixture := testsupport.FixturePath(testsupport.ContactsDocument)
	goldenPath := testsupport.FixturePath(testsupport.ContactsGolden)

	got, err := DiscoverPhoneFields(ctx, openapi.SourceFromFile(fixture))
	if err != nil {
		t.Fatalf("discover from file: %v", err)
	}
	testsupport.WriteGolden(t, goldenPath, got)
	want := testsupport.MustLoadPhoneFields(t, goldenPath)
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	src, err := openapi.SourceFromURL(server.URL)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := DiscoverPhoneFields(ctx, src); err == nil {
		t.Fatalf("expected http sources to be disabled by default")
	}
	gotHTTP, err := DiscoverPhoneFields(ctx, src, openapi.WithHTTPFallback(0))
	if err != nil {
		t.Fatalf("discover over http: %v", err)
	}
	if diff := testsupport.CompareGolden(want, gotHTTP); diff != "" {
		t.Fatalf("http mismatch (-want +got):\n%s", diff)
	}
}
