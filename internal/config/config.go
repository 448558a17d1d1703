// Package config loads ember.toml, the project-level tuning file for the
// VM and garbage collector, the way the teacher toolchain reads its own
// project manifest.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// GC carries the garbage collector's tunable knobs (spec.md §4.6).
type GC struct {
	// InitialHeapBytes is the next_gc threshold before any allocation
	// has happened.
	InitialHeapBytes int64 `toml:"initial_heap_bytes"`
	// GrowFactor multiplies bytes_allocated to compute the next
	// collection threshold after a sweep.
	GrowFactor float64 `toml:"grow_factor"`
	// Stress forces a collection on every allocation growth, the way
	// clox's DEBUG_STRESS_GC_BUILD does — useful for catching rooting
	// bugs in tests.
	Stress bool `toml:"stress"`
}

// VM carries VM limits (spec.md Invariant 7).
type VM struct {
	FramesMax     int `toml:"frames_max"`
	StackPerFrame int `toml:"stack_per_frame"`
}

// UI carries output preferences for cmd/ember.
type UI struct {
	Color string `toml:"color"` // "auto" | "on" | "off"
	Quiet bool   `toml:"quiet"`
}

// Diag carries the compile-diagnostics cap (spec.md §7 Propagation).
type Diag struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// Config is the parsed contents of ember.toml.
type Config struct {
	GC   GC   `toml:"gc"`
	VM   VM   `toml:"vm"`
	UI   UI   `toml:"ui"`
	Diag Diag `toml:"diag"`
}

// Default returns the configuration used when no ember.toml is present,
// matching the constants spec.md names directly: GC_HEAP_GROW_FACTOR = 2,
// FRAMES_MAX = 64, and a 256-slot-per-frame stack budget.
func Default() Config {
	return Config{
		GC:   GC{InitialHeapBytes: 1024 * 1024, GrowFactor: 2.0, Stress: false},
		VM:   VM{FramesMax: 64, StackPerFrame: 256},
		UI:   UI{Color: "auto", Quiet: false},
		Diag: Diag{MaxDiagnostics: 100},
	}
}

// Load reads and parses ember.toml at path on top of Default(): fields
// absent from the file keep their default, while a field the file sets
// (even to zero) takes the file's value. A missing file is not an error;
// it just yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	// Decode onto the defaults so an ember.toml that only overrides one
	// field doesn't zero the rest.
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
