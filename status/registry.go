package status

import (
	"strconv"
	"sync/atomic"
)

// Registry collects frame and entity metrics
// The frame loop writes; the HUD and shutdown summary read
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Snapshot formats every metric as text, keyed by name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.Ints.Count()+r.Floats.Count()+r.Strings.Count())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = strconv.FormatInt(ptr.Load(), 10)
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out[key] = strconv.FormatFloat(ptr.Get(), 'f', 1, 64)
	})
	r.Strings.Range(func(key string, ptr *AtomicString) {
		out[key] = ptr.Load()
	})
	return out
}
