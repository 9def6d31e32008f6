package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sort"

	"github.com/gorilla/websocket"

	"github.com/goliatone/go-phoneinput/pkg/page"
	"github.com/goliatone/go-phoneinput/pkg/widget"
)

// DefaultReadLimit caps the size of one client message.
const DefaultReadLimit = 16 << 10

// AttributesFunc derives the initial widget attributes from the upgrade request.
type AttributesFunc func(*http.Request) map[string]string

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the handler logger, shared by every session.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithUpgrader replaces the websocket upgrader.
func WithUpgrader(upgrader websocket.Upgrader) HandlerOption {
	return func(h *Handler) {
		h.upgrader = upgrader
	}
}

// WithPageOptions adds options applied to every session page.
func WithPageOptions(opts ...page.Option) HandlerOption {
	return func(h *Handler) {
		h.pageOpts = append(h.pageOpts, opts...)
	}
}

// WithWidgetOptions adds options applied to every session widget.
func WithWidgetOptions(opts ...widget.Option) HandlerOption {
	return func(h *Handler) {
		h.widgetOpts = append(h.widgetOpts, opts...)
	}
}

// WithAttributes replaces the default query parameter mapping.
func WithAttributes(fn AttributesFunc) HandlerOption {
	return func(h *Handler) {
		if fn != nil {
			h.attributes = fn
		}
	}
}

// WithReadLimit sets the maximum message size in bytes.
func WithReadLimit(limit int64) HandlerOption {
	return func(h *Handler) {
		if limit > 0 {
			h.readLimit = limit
		}
	}
}

// Handler upgrades requests to websockets and runs one Session per
// connection.
type Handler struct {
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	pageOpts   []page.Option
	widgetOpts []widget.Option
	attributes AttributesFunc
	readLimit  int64
}

// NewHandler creates a handler. The default upgrader accepts same-origin
// requests and requests without an Origin header.
func NewHandler(options ...HandlerOption) *Handler {
	h := &Handler{
		logger: slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     SameOrigin,
		},
		attributes: QueryAttributes,
		readLimit:  DefaultReadLimit,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

// SameOrigin accepts requests whose Origin host matches the request host.
func SameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}

// QueryAttributes maps query parameters named after observed attributes to
// widget attributes. Other parameters are ignored.
func QueryAttributes(r *http.Request) map[string]string {
	attrs := make(map[string]string)
	query := r.URL.Query()
	for _, name := range widget.ObservedAttributes {
		if values, ok := query[name]; ok {
			value := ""
			if len(values) > 0 {
				value = values[0]
			}
			attrs[name] = value
		}
	}
	for _, name := range []string{widget.AttrCountryOrder, widget.AttrSeparateDialCode, widget.AttrFormatOnDisplay} {
		if values, ok := query[name]; ok && len(values) > 0 {
			attrs[name] = values[0]
		}
	}
	return attrs
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.readLimit)

	attrs := h.attributes(r)
	widgetOpts := append([]widget.Option{widget.WithAttributes(attrs)}, h.widgetOpts...)
	session := NewSession(h.logger, h.pageOpts, widgetOpts)
	defer session.Close()

	ctx := r.Context()
	logger := h.logger.With("session", session.ID())
	logger.Info("live session opened", "attributes", sortedNames(attrs))

	initial, err := session.Start(ctx)
	if err != nil {
		logger.Error("live session start failed", "err", err)
		_ = conn.WriteJSON(errorMessage(err.Error()))
		return
	}
	if err := writeAll(conn, initial); err != nil {
		logger.Debug("live write failed", "err", err)
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("live read failed", "err", err)
			}
			break
		}
		out, err := session.Handle(ctx, msg)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			logger.Error("live message failed", "type", msg.Type, "err", err)
			out = []Message{errorMessage(err.Error())}
		}
		if err := writeAll(conn, out); err != nil {
			logger.Debug("live write failed", "err", err)
			break
		}
	}
	logger.Info("live session closed")
}

func writeAll(conn *websocket.Conn, msgs []Message) error {
	for _, msg := range msgs {
		if err := conn.WriteJSON(msg); err != nil {
			return err
		}
	}
	return nil
}

func sortedNames(attrs map[string]string) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
