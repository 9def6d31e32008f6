package live

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-phoneinput/pkg/page"
	"github.com/goliatone/go-phoneinput/pkg/widget"
)

// DefaultRunTimeout bounds how long one message may keep the page busy.
const DefaultRunTimeout = 10 * time.Second

var fieldEvents = map[string]bool{
	"input":   true,
	"change":  true,
	"keyup":   true,
	"paste":   true,
	"focus":   true,
	"blur":    true,
	"keydown": true,

	// countrychange carries the picked ISO2 code in Value.
	"countrychange": true,
}

var widgetEvents = []string{widget.EventChange, widget.EventBlur, widget.EventValid}

// Session is one page hosting one widget. A session is not safe for
// concurrent use; the websocket handler drives it from a single goroutine.
type Session struct {
	id      string
	logger  *slog.Logger
	page    *page.Page
	widget  *widget.Widget
	timeout time.Duration

	outbox   []Message
	lastHTML string
}

// NewSession builds a page and widget. Nothing runs until Start.
func NewSession(logger *slog.Logger, pageOpts []page.Option, widgetOpts []widget.Option) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id)

	s := &Session{
		id:      id,
		logger:  logger,
		page:    page.New(append([]page.Option{page.WithLogger(logger)}, pageOpts...)...),
		widget:  widget.New(append([]widget.Option{widget.WithLogger(logger)}, widgetOpts...)...),
		timeout: DefaultRunTimeout,
	}
	for _, typ := range widgetEvents {
		s.page.AddEventListener(nil, typ, func(ev *page.Event) {
			s.outbox = append(s.outbox, Message{Type: TypeEvent, Event: ev.Type, Detail: ev.Detail})
		})
	}
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Widget returns the hosted widget.
func (s *Session) Widget() *widget.Widget {
	return s.widget
}

// Start attaches the widget and waits for it to load. The returned messages
// carry the initial markup.
func (s *Session) Start(ctx context.Context) ([]Message, error) {
	if err := s.page.Attach(s.widget); err != nil {
		return nil, fmt.Errorf("live: attach widget: %w", err)
	}
	if err := s.run(ctx); err != nil {
		return nil, err
	}
	s.logger.Debug("live session started", "state", s.widget.State().String())
	return s.flush(), nil
}

// Handle applies one client message and returns what it produced.
func (s *Session) Handle(ctx context.Context, msg Message) ([]Message, error) {
	s.page.Post(func() { s.apply(msg) })
	if err := s.run(ctx); err != nil {
		return nil, err
	}
	return s.flush(), nil
}

// Close detaches the widget.
func (s *Session) Close() {
	s.page.Detach(s.widget)
}

func (s *Session) run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.page.Run(ctx); err != nil {
		return fmt.Errorf("live: run page: %w", err)
	}
	return nil
}

func (s *Session) apply(msg Message) {
	w := s.widget
	switch msg.Type {
	case TypeEvent:
		s.applyEvent(msg)
	case TypeAttr:
		if msg.Name == "" {
			s.outbox = append(s.outbox, errorMessage("attr message needs a name"))
			return
		}
		if msg.Remove {
			w.RemoveAttribute(msg.Name)
		} else {
			w.SetAttribute(msg.Name, msg.Value)
		}
	case TypeCall:
		result, err := s.call(msg)
		if err != nil {
			s.outbox = append(s.outbox, errorMessage(err.Error()))
			return
		}
		s.outbox = append(s.outbox, Message{Type: TypeResult, Method: msg.Method, Result: result})
	default:
		s.outbox = append(s.outbox, errorMessage(fmt.Sprintf("unknown message type %q", msg.Type)))
	}
}

func (s *Session) applyEvent(msg Message) {
	if !fieldEvents[msg.Event] {
		s.outbox = append(s.outbox, errorMessage(fmt.Sprintf("unsupported event %q", msg.Event)))
		return
	}
	field := s.widget.Field()
	if field == nil {
		s.outbox = append(s.outbox, errorMessage("widget is not rendered"))
		return
	}
	switch msg.Event {
	case "focus":
		s.page.Focus(field)
	case "countrychange":
		s.widget.SetCountry(msg.Value)
	case "blur":
		if field.Same(s.page.ActiveElement()) {
			s.page.Blur()
		} else {
			s.page.Fire(field, "blur")
		}
	default:
		field.SetValue(msg.Value)
		s.page.Fire(field, msg.Event)
	}
}

func (s *Session) call(msg Message) (any, error) {
	w := s.widget
	switch msg.Method {
	case "validate":
		return w.Validate(), nil
	case "isValid":
		return w.IsValid(), nil
	case "getNumber":
		return w.GetNumber(), nil
	case "getNumberFormatted":
		return w.GetNumberFormatted(), nil
	case "getSelectedCountryData":
		return w.GetSelectedCountryData(), nil
	case "getValidationError":
		code, ok := w.GetValidationError()
		if !ok {
			return nil, nil
		}
		return int(code), nil
	case "setNumber":
		w.SetNumber(msg.Value)
		return nil, nil
	case "setCountry":
		w.SetCountry(msg.Value)
		return nil, nil
	case "reset":
		w.Reset()
		return nil, nil
	case "focus":
		w.Focus()
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown method %q", msg.Method)
	}
}

// flush returns queued messages, plus the markup when it changed.
func (s *Session) flush() []Message {
	out := s.outbox
	s.outbox = nil
	if markup := s.widget.Element().OuterHTML(); markup != s.lastHTML {
		s.lastHTML = markup
		out = append(out, Message{Type: TypeHTML, HTML: markup})
	}
	return out
}
