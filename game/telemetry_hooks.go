package game

import (
	"log/slog"

	"github.com/pthm-cable/fireworks/telemetry"
)

// bookmarkHistory is the number of windows the bookmark detector averages over.
const bookmarkHistory = 10

// initTelemetry builds the recorder that the world flushes at window boundaries.
func (g *Game) initTelemetry(opts Options) error {
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = g.cfg.Telemetry.StatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return err
	}
	if err := om.WriteConfig(g.cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	if om != nil {
		slog.Info("telemetry output enabled", "dir", om.Dir())
	}

	g.outputManager = om
	g.perfCollector = telemetry.NewPerfCollector(g.cfg.Telemetry.PerfCollectorWindow)
	g.recorder = &telemetry.Recorder{
		Collector: telemetry.NewCollector(statsWindow, g.cfg.Derived.DT32),
		Perf:      g.perfCollector,
		Bookmarks: telemetry.NewBookmarkDetector(bookmarkHistory),
		Output:    om,
		LogStats:  opts.LogStats,
		OnStats: func(s telemetry.WindowStats) {
			g.lastStats = s
		},
	}
	return nil
}

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}
