package debug

// Periodic runtime statistics logger. Started only when config.Debug is true.
// Logs goroutine count, Go heap and process RSS so native growth from Tk
// photos can be told apart from Go heap growth.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats is one sample of process statistics.
type Stats struct {
	Goroutines uint64
	HeapAlloc  uint64
	HeapInuse  uint64
	StackInuse uint64
	NumGC      uint32
	RSS        uint64 // 0 when unavailable
}

// Collect samples the current process.
func Collect() Stats {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := Stats{
		HeapAlloc:  ms.HeapAlloc,
		HeapInuse:  ms.HeapInuse,
		StackInuse: ms.StackInuse,
		NumGC:      ms.NumGC,
	}
	if samples[0].Value.Kind() == metrics.KindUint64 {
		s.Goroutines = samples[0].Value.Uint64()
	}
	if rss, err := residentBytes(); err == nil {
		s.RSS = rss
	}
	return s
}

// StartStatsLogger logs a sample every interval until ctx is done. extra, if
// set, adds caller attributes to each line and must be safe to call from
// another goroutine.
func StartStatsLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, extra func() []slog.Attr) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				logStats(logger, Collect(), extra)
			}
		}
	}()
}

func logStats(logger *slog.Logger, s Stats, extra func() []slog.Attr) {
	attrs := []slog.Attr{
		slog.Uint64("goroutines", s.Goroutines),
		slog.String("heap_alloc", humanize.IBytes(s.HeapAlloc)),
		slog.String("heap_inuse", humanize.IBytes(s.HeapInuse)),
		slog.String("stack_inuse", humanize.IBytes(s.StackInuse)),
		slog.Uint64("num_gc", uint64(s.NumGC)),
		slog.String("rss", humanize.IBytes(s.RSS)),
	}
	if extra != nil {
		attrs = append(attrs, extra()...)
	}
	logger.LogAttrs(context.Background(), slog.LevelInfo, "runtime-stats", attrs...)
}
