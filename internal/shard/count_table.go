// Package shard implements the two concurrent, hash-keyed tables the
// corpus miner updates from every worker goroutine: a counting table and
// a write-once canonical-form table, each split into fixed shards keyed
// by the high bits of the position hash so unrelated keys never
// contend on the same lock.
package shard

import "sync"

// shardCount is the number of shards each table is split into. Chosen
// as a power of two well above the planner's typical worker count so
// that, per spec.md's rationale, two threads touching different keys
// statistically never share a shard.
const shardCount = 256

// CountTable is a concurrent map from a 64-bit position hash to a
// 64-bit occurrence counter. The only mutating operation it exposes is
// IncrementOrInsert; Get and Len read it under the shard locks.
type CountTable struct {
	shards [shardCount]countShard
}

type countShard struct {
	mu     sync.Mutex
	counts map[uint64]uint64
}

// NewCountTable returns an empty CountTable.
func NewCountTable() *CountTable {
	t := &CountTable{}
	for i := range t.shards {
		t.shards[i].counts = make(map[uint64]uint64)
	}
	return t
}

func shardIndex(key uint64) uint64 {
	return key >> (64 - 8)
}

// IncrementOrInsert atomically inserts key with value 1 (reporting
// isNew=true) or increments its existing value by one, returning the
// value after the update.
func (t *CountTable) IncrementOrInsert(key uint64) (isNew bool, valueAfter uint64) {
	s := &t.shards[shardIndex(key)]
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.counts[key]
	if !ok {
		s.counts[key] = 1
		return true, 1
	}
	v++
	s.counts[key] = v
	return false, v
}

// Get returns the counter for key and whether it exists. Safe to call
// concurrently with IncrementOrInsert, but intended for the read-only
// phase after all workers have joined.
func (t *CountTable) Get(key uint64) (uint64, bool) {
	s := &t.shards[shardIndex(key)]
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.counts[key]
	return v, ok
}

// Len returns the total number of distinct keys across all shards.
func (t *CountTable) Len() int {
	n := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.Lock()
		n += len(s.counts)
		s.mu.Unlock()
	}
	return n
}
