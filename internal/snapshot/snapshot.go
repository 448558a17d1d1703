// Package snapshot encodes a point-in-time view of a heap's object
// graph for "ember inspect", the way internal/driver's disk cache in
// the teacher toolchain serializes module metadata with
// github.com/vmihailenco/msgpack: a plain struct, msgpack-encoded,
// schema-versioned so a format change doesn't silently misparse an
// older snapshot.
package snapshot

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/gc"
)

// schemaVersion guards against silently misreading a snapshot written
// by an incompatible build; bump it whenever Snapshot's shape changes.
const schemaVersion uint16 = 1

// Snapshot is a stable, non-cyclical view of heap state: counts and
// byte totals, never compiled bytecode or live pointers, so writing one
// is pure introspection and never a way to resume execution (the
// Non-goal on bytecode persistence is about the bytecode stream, not
// about this).
type Snapshot struct {
	Schema      uint16
	Cycles      int
	ObjectCount int
	BytesLive   int64
	NextGC      int64
	CountByKind map[uint8]int
}

// FromStats converts a gc.Stats reading into a serializable Snapshot.
func FromStats(s gc.Stats) Snapshot {
	byKind := make(map[uint8]int, len(s.CountByKind))
	for k, v := range s.CountByKind {
		byKind[uint8(k)] = v
	}
	return Snapshot{
		Schema:      schemaVersion,
		Cycles:      s.Cycles,
		ObjectCount: s.ObjectCount,
		BytesLive:   s.BytesAllocated,
		NextGC:      s.NextGC,
		CountByKind: byKind,
	}
}

// Write msgpack-encodes snap to w.
func Write(w io.Writer, snap Snapshot) error {
	return msgpack.NewEncoder(w).Encode(&snap)
}

// Read decodes a Snapshot previously written by Write.
func Read(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	err := msgpack.NewDecoder(r).Decode(&snap)
	return snap, err
}
