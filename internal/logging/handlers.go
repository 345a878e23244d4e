package logging

import (
	"context"
	"errors"
	"log/slog"
)

// sinkSet fans each record out to every sink the session carries: the log
// file or console handler, plus the OTel bridge when one is configured.
// Sinks that reject the record's level are skipped individually; a failing
// sink does not block delivery to the others.
type sinkSet struct {
	sinks []slog.Handler
}

func newSinkSet(sinks ...slog.Handler) *sinkSet {
	s := &sinkSet{}
	for _, sink := range sinks {
		if sink != nil {
			s.sinks = append(s.sinks, sink)
		}
	}
	return s
}

func (s *sinkSet) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sink := range s.sinks {
		if sink.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (s *sinkSet) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, sink := range s.sinks {
		if !sink.Enabled(ctx, r.Level) {
			continue
		}
		if err := sink.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *sinkSet) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(s.sinks))
	for i, sink := range s.sinks {
		next[i] = sink.WithAttrs(attrs)
	}
	return &sinkSet{sinks: next}
}

func (s *sinkSet) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	next := make([]slog.Handler, len(s.sinks))
	for i, sink := range s.sinks {
		next[i] = sink.WithGroup(name)
	}
	return &sinkSet{sinks: next}
}

// assetTagHandler stamps the drivetrain currently under edit onto every
// record, so one session log can be filtered per asset. An empty name means
// no asset is open and the record passes through untagged.
type assetTagHandler struct {
	next  slog.Handler
	asset func() string
}

func (h *assetTagHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *assetTagHandler) Handle(ctx context.Context, r slog.Record) error {
	if name := h.asset(); name != "" {
		r.AddAttrs(slog.String("asset", name))
	}
	return h.next.Handle(ctx, r)
}

func (h *assetTagHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &assetTagHandler{next: h.next.WithAttrs(attrs), asset: h.asset}
}

func (h *assetTagHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &assetTagHandler{next: h.next.WithGroup(name), asset: h.asset}
}
