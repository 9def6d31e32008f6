package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	pkgopenapi "github.com/goliatone/go-phoneinput/pkg/openapi"
)

var (
	// ErrHTTPDisabled is returned for URL sources unless an HTTP client or
	// the HTTP fallback is configured.
	ErrHTTPDisabled = errors.New("openapi loader: http support disabled")
	// ErrNilSource is returned when Load receives no source.
	ErrNilSource = errors.New("openapi loader: source is nil")
)

// requestTimeout bounds a single fetch when the caller gave none.
const requestTimeout = 30 * time.Second

type fetchFunc func(ctx context.Context, location string) ([]byte, error)

// Loader reads OpenAPI documents from local files, an fs.FS or HTTP. Phone
// field discovery only needs the raw bytes; parsing happens later.
type Loader struct {
	fetchers map[pkgopenapi.SourceKind]fetchFunc
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New builds a Loader from resolved options. URL sources stay disabled until
// an HTTP client or the HTTP fallback is supplied.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	l := &Loader{fetchers: map[pkgopenapi.SourceKind]fetchFunc{
		pkgopenapi.SourceKindFile: loadFile,
	}}
	if options.FileSystem != nil {
		fsys := options.FileSystem
		l.fetchers[pkgopenapi.SourceKindFS] = func(ctx context.Context, name string) ([]byte, error) {
			return loadFromFS(ctx, fsys, name)
		}
	}
	if client := httpClient(options); client != nil {
		timeout := client.Timeout
		l.fetchers[pkgopenapi.SourceKindURL] = func(ctx context.Context, url string) ([]byte, error) {
			return loadHTTP(ctx, client, url, timeout)
		}
	}
	return l
}

func httpClient(options pkgopenapi.LoaderOptions) *http.Client {
	timeout := options.RequestTimeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		return &clone
	case options.AllowHTTPFallback:
		return &http.Client{Timeout: timeout}
	default:
		return nil
	}
}

// Load reads the document behind src.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, ErrNilSource
	}
	if ctx == nil {
		ctx = context.Background()
	}

	fetch, ok := l.fetchers[src.Kind()]
	if !ok {
		switch src.Kind() {
		case pkgopenapi.SourceKindURL:
			return pkgopenapi.Document{}, ErrHTTPDisabled
		case pkgopenapi.SourceKindFS:
			return pkgopenapi.Document{}, errors.New("openapi loader: filesystem is not configured")
		default:
			return pkgopenapi.Document{}, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
		}
	}
	data, err := fetch(ctx, src.Location())
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: read %s: %w", src.Location(), err)
	}
	return pkgopenapi.NewDocument(src, data)
}

func loadFromFS(ctx context.Context, fsys fs.FS, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, name)
}
