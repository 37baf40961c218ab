package shard

import "sync"

// CanonicalTable is a concurrent map from a 64-bit position hash to the
// compact binary encoding of that position, written at most once per
// key: the second and subsequent TryInsert for an already-present key
// are silently discarded, matching the report-threshold-crossing
// semantics that feed it (only the first caller to cross the threshold
// should pay for an encoding).
type CanonicalTable struct {
	shards [shardCount]canonicalShard
}

type canonicalShard struct {
	mu      sync.Mutex
	entries map[uint64][]byte
}

// NewCanonicalTable returns an empty CanonicalTable.
func NewCanonicalTable() *CanonicalTable {
	t := &CanonicalTable{}
	for i := range t.shards {
		t.shards[i].entries = make(map[uint64][]byte)
	}
	return t
}

// TryInsert stores encoding under key if no value is stored yet,
// reporting whether this call was the one that stored it.
func (t *CanonicalTable) TryInsert(key uint64, encoding []byte) (inserted bool) {
	s := &t.shards[shardIndex(key)]
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return false
	}
	s.entries[key] = encoding
	return true
}

// Get returns the stored encoding for key and whether it exists.
func (t *CanonicalTable) Get(key uint64) ([]byte, bool) {
	s := &t.shards[shardIndex(key)]
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok
}

// Range calls f once for every stored (key, encoding) pair. f must not
// call back into the table; Range is intended for the post-run,
// single-threaded output phase only.
func (t *CanonicalTable) Range(f func(key uint64, encoding []byte)) {
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.Lock()
		for k, v := range s.entries {
			f(k, v)
		}
		s.mu.Unlock()
	}
}
