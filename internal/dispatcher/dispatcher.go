package dispatcher

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Event represents a property change notification from the editor.
type Event struct {
	Property  string
	Args      []string
	Timestamp time.Time
}

// HandlerFunc processes an event and returns a result.
type HandlerFunc func(Event) (any, error)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	logged bool
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Dispatcher routes property change events to registered handlers. Editing
// is single threaded, so handlers run synchronously on the caller's
// goroutine. A property with no handler is ignored rather than rejected:
// most edits need no post-processing.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   Logger

	// OTEL metrics
	processed metric.Int64Counter
	ignored   metric.Int64Counter
}

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}

	// Get meter from global OTel provider (returns no-op if not configured)
	m := meter()

	var err error

	d.processed, err = m.Int64Counter(
		"dispatcher.events.processed",
		metric.WithDescription("Total property events handled"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	d.ignored, err = m.Int64Counter(
		"dispatcher.events.ignored",
		metric.WithDescription("Total property events with no registered handler"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ignored counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given property with optional configuration.
func (d *Dispatcher) Register(property string, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := h

	if cfg.logged {
		handler = d.withLogging(property, handler)
	}

	d.handlers[property] = handler
}

// Dispatch routes an event to its registered handler. Events for properties
// without a handler return (nil, nil).
func (d *Dispatcher) Dispatch(e Event) (any, error) {
	propAttr := attribute.String("property", e.Property)

	h, ok := d.handlers[e.Property]
	if !ok {
		d.ignored.Add(context.Background(), 1, metric.WithAttributes(propAttr))
		return nil, nil
	}

	result, err := h(e)
	d.processed.Add(context.Background(), 1, metric.WithAttributes(propAttr))
	return result, err
}

// HasHandler returns true if a handler is registered for the property.
func (d *Dispatcher) HasHandler(property string) bool {
	_, ok := d.handlers[property]
	return ok
}

func (d *Dispatcher) withLogging(property string, h HandlerFunc) HandlerFunc {
	return func(e Event) (any, error) {
		start := time.Now()
		d.logger.Debug("handling property edit", "property", property, "args", len(e.Args))

		result, err := h(e)

		if err != nil {
			d.logger.Error("property edit failed", "property", property, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("property edit complete", "property", property, "duration", time.Since(start))
		}

		return result, err
	}
}
