package logging

import (
	"context"
	"log/slog"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// fluentHandler forwards slog records to a fluentd/fluent-bit collector as
// flat maps. Delivery is best effort: a post failure never fails the caller.
type fluentHandler struct {
	client *fluent.Fluent
	tag    string
	level  slog.Level
	attrs  []slog.Attr
	group  string
}

func newFluentHandler(client *fluent.Fluent, tag string, level slog.Level) *fluentHandler {
	return &fluentHandler{client: client, tag: tag, level: level}
}

func (h *fluentHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *fluentHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]interface{}{
		"level":   r.Level.String(),
		"message": r.Message,
	}
	for _, a := range h.attrs {
		data[h.key(a.Key)] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[h.key(a.Key)] = a.Value.Resolve().Any()
		return true
	})
	_ = h.client.PostWithTime(h.tag, r.Time, data)
	return nil
}

func (h *fluentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

func (h *fluentHandler) WithGroup(name string) slog.Handler {
	nh := *h
	if nh.group != "" {
		nh.group += "."
	}
	nh.group += name
	return &nh
}

func (h *fluentHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}
