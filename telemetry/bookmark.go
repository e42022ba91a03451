package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFinale       BookmarkType = "finale"
	BookmarkParticlePeak BookmarkType = "particle_peak"
	BookmarkLull         BookmarkType = "lull"
)

// Thresholds below which windows are not interesting enough to bookmark.
const (
	finaleMinDetonations = 3
	peakMinParticles     = 500
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags unusual stats windows against a rolling history.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	peakParticles int // highest window peak seen so far
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFinale(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkParticlePeak(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkLull(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	if stats.PeakParticles > bd.peakParticles {
		bd.peakParticles = stats.PeakParticles
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkFinale fires when detonations exceed twice the rolling average.
func (bd *BookmarkDetector) checkFinale(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Detonations < finaleMinDetonations {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Detonations
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || float64(stats.Detonations) <= avg*2 {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkFinale,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d detonations is %.1fx average (%.1f)", stats.Detonations, float64(stats.Detonations)/avg, avg),
	}
}

// checkParticlePeak fires on a new all-time particle population high.
func (bd *BookmarkDetector) checkParticlePeak(stats WindowStats) *Bookmark {
	if len(bd.getHistory()) == 0 || stats.PeakParticles < peakMinParticles {
		return nil
	}
	if stats.PeakParticles <= bd.peakParticles {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkParticlePeak,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Particle population peaked at %d (previous %d)", stats.PeakParticles, bd.peakParticles),
	}
}

// checkLull fires when a window has no detonations after one that did.
func (bd *BookmarkDetector) checkLull(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) == 0 || stats.Detonations > 0 {
		return nil
	}

	prevIdx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	prev := bd.history[prevIdx]
	if prev.Detonations == 0 {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkLull,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No detonations after %d in the previous window", prev.Detonations),
	}
}
