package observability

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/danmuck/agentwire/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK            = "ok"
	ResultTruncated     = "truncated"
	ResultInvalidTag    = "invalid_tag"
	ResultInvalidUTF8   = "invalid_utf8"
	ResultTrailingBytes = "trailing_bytes"
	ResultTooLarge      = "too_large"
	ResultOther         = "other"
)

var (
	registerOnce sync.Once

	codecDecodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentwire",
			Subsystem: "codec",
			Name:      "decodes_total",
			Help:      "Decode attempts by value kind and result.",
		},
		[]string{"kind", "result"},
	)
	codecEncodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentwire",
			Subsystem: "codec",
			Name:      "encodes_total",
			Help:      "Encode attempts by value kind and result.",
		},
		[]string{"kind", "result"},
	)
	codecInputBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agentwire",
			Subsystem: "codec",
			Name:      "decode_input_bytes",
			Help:      "Size of buffers handed to the decoder.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
		[]string{"kind"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(codecDecodes, codecEncodes, codecInputBytes)
	})
}

// Result maps a codec error onto its metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, protocol.ErrTruncated):
		return ResultTruncated
	case errors.Is(err, protocol.ErrInvalidTag):
		return ResultInvalidTag
	case errors.Is(err, protocol.ErrInvalidUTF8):
		return ResultInvalidUTF8
	case errors.Is(err, protocol.ErrTrailingBytes):
		return ResultTrailingBytes
	case errors.Is(err, protocol.ErrTooLarge):
		return ResultTooLarge
	default:
		return ResultOther
	}
}

func RecordDecode(kind string, size int, err error) {
	RegisterMetrics()
	codecDecodes.WithLabelValues(kind, Result(err)).Inc()
	codecInputBytes.WithLabelValues(kind).Observe(float64(size))
}

func RecordEncode(kind string, err error) {
	RegisterMetrics()
	codecEncodes.WithLabelValues(kind, Result(err)).Inc()
}

// WriteText writes one line per agentwire counter and histogram gathered
// from g, sorted by name and labels.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	lines := make([]string, 0)
	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, "agentwire_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			pairs := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				pairs = append(pairs, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			labels := "{" + strings.Join(pairs, ",") + "}"
			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s%s %g", name, labels, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines,
					fmt.Sprintf("%s_count%s %d", name, labels, h.GetSampleCount()),
					fmt.Sprintf("%s_sum%s %g", name, labels, h.GetSampleSum()),
				)
			}
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
