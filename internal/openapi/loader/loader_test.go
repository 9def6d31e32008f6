package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-phoneinput/pkg/openapi"
)

const minimalDocument = "openapi: 3.0.3\ninfo:\n  title: phones\n  version: 1.0.0\npaths: {}\n"

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{"specs/phones.yaml": {Data: []byte(minimalDocument)}}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(fsys)))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("specs/phones.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != minimalDocument {
		t.Fatalf("unexpected raw document %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("missing.yaml")); err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected error naming the missing file, got %v", err)
	}
}

func TestLoadRejectsUnconfiguredSources(t *testing.T) {
	l := New(pkgopenapi.NewLoaderOptions())
	ctx := context.Background()

	if _, err := l.Load(ctx, nil); !errors.Is(err, ErrNilSource) {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFS("phones.yaml")); err == nil {
		t.Fatal("expected error without a filesystem")
	}
	src, err := pkgopenapi.SourceFromURL("https://example.com/openapi.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := l.Load(ctx, src); !errors.Is(err, ErrHTTPDisabled) {
		t.Fatalf("expected ErrHTTPDisabled, got %v", err)
	}
}

func TestLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(minimalDocument))
	}))
	defer server.Close()

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client())))
	ctx := context.Background()

	src, _ := pkgopenapi.SourceFromURL(server.URL + "/openapi.yaml")
	if _, err := l.Load(ctx, src); err != nil {
		t.Fatalf("load: %v", err)
	}

	missing, _ := pkgopenapi.SourceFromURL(server.URL + "/nope.yaml")
	if _, err := l.Load(ctx, missing); err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}
