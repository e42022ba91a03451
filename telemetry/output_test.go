package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/fireworks/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// Nil manager discards writes
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestOutputManager_WritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for tick := int32(300); tick <= 900; tick += 300 {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: tick, Detonations: 4}); err != nil {
			t.Fatal(err)
		}
		if err := om.WritePerf(PerfStats{}, tick); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkLull, Tick: 900, Description: "quiet"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("header written more than once")
	}

	bm, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(bm), "lull,900,quiet") {
		t.Errorf("bookmarks.csv missing row:\n%s", bm)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}

func TestRecorder_Flush(t *testing.T) {
	var flushed []WindowStats
	r := &Recorder{
		Collector: NewCollector(1.0, 0.1),
		Bookmarks: NewBookmarkDetector(5),
		OnStats:   func(s WindowStats) { flushed = append(flushed, s) },
	}

	if r.Flush(5, 0, 0) {
		t.Error("flushed before window end")
	}
	r.Collector.RecordDetonation(12)
	if !r.Flush(10, 0, 0) {
		t.Fatal("expected flush at window end")
	}
	if len(flushed) != 1 || flushed[0].Detonations != 1 {
		t.Errorf("OnStats got %+v, want one window with 1 detonation", flushed)
	}

	var nilRecorder *Recorder
	if nilRecorder.Flush(100, 0, 0) {
		t.Error("nil recorder should never flush")
	}
}
