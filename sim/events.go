package sim

// LaunchEvent records a firework launch.
type LaunchEvent struct {
	StartX, StartY   float32
	TargetX, TargetY float32
	Manual           bool
}

// Detonation records a burst of particles, from a firework or created directly.
type Detonation struct {
	X, Y      float32
	Hue       float32
	Particles int
	Manual    bool
}

// Events collects launches and detonations since the last ResetEvents.
type Events struct {
	Launches    []LaunchEvent
	Detonations []Detonation
}

// Empty reports whether no events were recorded.
func (e Events) Empty() bool {
	return len(e.Launches) == 0 && len(e.Detonations) == 0
}

// TrackEvents enables or disables event recording. Hosts that never drain
// events should leave it off.
func (w *World) TrackEvents(enabled bool) {
	w.trackEvents = enabled
	if !enabled {
		w.ResetEvents()
	}
}

// Events returns the events recorded since the last ResetEvents.
// The slices are reused after ResetEvents.
func (w *World) Events() Events {
	return w.events
}

// ResetEvents discards recorded events.
func (w *World) ResetEvents() {
	w.events.Launches = w.events.Launches[:0]
	w.events.Detonations = w.events.Detonations[:0]
}
