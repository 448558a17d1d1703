// Package table implements the open-addressed hash table spec.md §4.4
// specifies: power-of-two capacity, linear probing, tombstone deletes,
// grow at 0.75 load factor. One Table type backs string interning,
// globals, per-class method tables, and per-instance field tables.
package table

import "ember/internal/value"

const maxLoad = 0.75

type entry struct {
	key   *value.String // nil key + Nil value = empty slot; nil key + true value = tombstone
	val   value.Value
	isSet bool // distinguishes an empty slot (false) from a tombstone (true, key nil)
}

// Table is an open-addressed hash table keyed by interned *value.String.
type Table struct {
	entries []entry
	count   int // occupied slots: live entries plus tombstones
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// Count returns the number of live (non-tombstone) entries.
func (t *Table) Count() int {
	live := 0
	for i := range t.entries {
		if t.entries[i].key != nil {
			live++
		}
	}
	return live
}

// Get looks up key and reports whether it was found.
func (t *Table) Get(key *value.String) (value.Value, bool) {
	if len(t.entries) == 0 {
		return value.NilValue, false
	}
	idx := t.findEntry(key)
	if idx < 0 || t.entries[idx].key == nil {
		return value.NilValue, false
	}
	return t.entries[idx].val, true
}

// Set inserts or overwrites key -> val. Reports whether this created a
// brand new key (used by DEFINE_GLOBAL-style callers that care).
func (t *Table) Set(key *value.String, val value.Value) bool {
	if t.count+1 > int(float64(len(t.entries))*maxLoad) {
		t.grow()
	}
	idx := t.findEntryForInsert(key)
	isNewKey := t.entries[idx].key == nil
	if isNewKey && !t.entries[idx].isSet {
		// brand new slot, not a reused tombstone
		t.count++
	}
	t.entries[idx] = entry{key: key, val: val, isSet: true}
	return isNewKey
}

// Delete removes key, leaving a tombstone so later probes keep working.
func (t *Table) Delete(key *value.String) bool {
	if len(t.entries) == 0 {
		return false
	}
	idx := t.findEntry(key)
	if idx < 0 || t.entries[idx].key == nil {
		return false
	}
	t.entries[idx] = entry{key: nil, val: value.BoolValue(true), isSet: true} // tombstone sentinel
	return true
}

// findEntry returns the index of key's slot, or -1 if the table has no
// capacity yet. It returns the index of an empty slot (key == nil,
// isSet == false) when key is absent.
func (t *Table) findEntry(key *value.String) int {
	if len(t.entries) == 0 {
		return -1
	}
	mask := uint32(len(t.entries) - 1)
	idx := key.Hash & mask
	for {
		e := &t.entries[idx]
		if e.key == key {
			return int(idx)
		}
		if e.key == nil && !e.isSet {
			return int(idx)
		}
		idx = (idx + 1) & mask
	}
}

// findEntryForInsert is like findEntry but returns the first tombstone
// seen (for reuse) if key is not already present, per spec.md §4.4.
func (t *Table) findEntryForInsert(key *value.String) int {
	mask := uint32(len(t.entries) - 1)
	idx := key.Hash & mask
	tombstone := -1
	for {
		e := &t.entries[idx]
		if e.key == nil {
			if !e.isSet {
				if tombstone != -1 {
					return tombstone
				}
				return int(idx)
			}
			if tombstone == -1 {
				tombstone = int(idx)
			}
		} else if e.key == key {
			return int(idx)
		}
		idx = (idx + 1) & mask
	}
}

func (t *Table) grow() {
	newCap := 8
	if len(t.entries) > 0 {
		newCap = len(t.entries) * 2
	}
	old := t.entries
	t.entries = make([]entry, newCap)
	t.count = 0
	for _, e := range old {
		if e.key == nil {
			continue
		}
		idx := t.findEntryForInsert(e.key)
		t.entries[idx] = entry{key: e.key, val: e.val}
		t.count++
	}
}

// FindString walks the table looking for a content-equal interned string,
// used by the VM's intern table to dedup new string allocations
// (spec.md §4.4 findString).
func (t *Table) FindString(chars string, hash uint32) *value.String {
	if len(t.entries) == 0 {
		return nil
	}
	mask := uint32(len(t.entries) - 1)
	idx := hash & mask
	for {
		e := &t.entries[idx]
		if e.key == nil && !e.isSet {
			return nil
		}
		if e.key != nil && e.key.Hash == hash && e.key.Chars == chars {
			return e.key
		}
		idx = (idx + 1) & mask
	}
}

// RemoveWhite deletes every entry whose key is unmarked, breaking the
// table's (weak) reference so the string can be collected. Used by the
// GC at sweep time against the intern table (spec.md §4.4, §4.6 step 3).
func (t *Table) RemoveWhite() {
	for i := range t.entries {
		if t.entries[i].key != nil && !t.entries[i].key.Marked() {
			t.entries[i] = entry{key: nil, val: value.BoolValue(true), isSet: true}
		}
	}
}

// Each calls fn for every live entry. Used by the GC to mark every
// key/value pair reachable through this table (spec.md §4.6 step 2,
// "Table-mark sweeps key-strings and values").
func (t *Table) Each(fn func(key *value.String, val value.Value)) {
	for i := range t.entries {
		if t.entries[i].key != nil {
			fn(t.entries[i].key, t.entries[i].val)
		}
	}
}
