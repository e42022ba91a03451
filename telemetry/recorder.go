package telemetry

import "log/slog"

// Recorder ties the window collector, perf collector, bookmark detector and
// CSV output together for a host loop. Any of its parts may be nil.
type Recorder struct {
	Collector *Collector
	Perf      *PerfCollector
	Bookmarks *BookmarkDetector
	Output    *OutputManager
	LogStats  bool

	// OnStats, if set, is called with every flushed window.
	OnStats func(WindowStats)
}

// Flush closes the current stats window if it is due and fans the result out
// to logs, CSV files and bookmark detection. Returns true if a window was flushed.
func (r *Recorder) Flush(tick int32, liveFireworks, liveParticles int) bool {
	if r == nil || !r.Collector.ShouldFlush(tick) {
		return false
	}

	stats := r.Collector.Flush(tick, liveFireworks, liveParticles)
	perfStats := r.Perf.Stats()

	if r.OnStats != nil {
		r.OnStats(stats)
	}

	if r.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := r.Output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := r.Output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	if r.Bookmarks == nil {
		return true
	}
	for _, bm := range r.Bookmarks.Check(stats) {
		if r.LogStats {
			bm.LogBookmark()
		}
		if err := r.Output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
	return true
}
