package shard

import (
	"sync"
	"testing"
)

func TestTryInsertWriteOnce(t *testing.T) {
	tbl := NewCanonicalTable()
	if ok := tbl.TryInsert(1, []byte("first")); !ok {
		t.Fatal("first TryInsert should succeed")
	}
	if ok := tbl.TryInsert(1, []byte("second")); ok {
		t.Error("second TryInsert for the same key must be discarded")
	}
	v, ok := tbl.Get(1)
	if !ok || string(v) != "first" {
		t.Errorf("Get(1) = %q (ok=%v), want \"first\"", v, ok)
	}
}

func TestTryInsertConcurrentOnlyOneWinner(t *testing.T) {
	tbl := NewCanonicalTable()
	const n = 200
	var wg sync.WaitGroup
	wins := make([]bool, n)
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins[i] = tbl.TryInsert(99, []byte{byte(i)})
		}()
	}
	wg.Wait()
	winners := 0
	for _, w := range wins {
		if w {
			winners++
		}
	}
	if winners != 1 {
		t.Errorf("winners = %d, want exactly 1", winners)
	}
}

func TestCanonicalTableRange(t *testing.T) {
	tbl := NewCanonicalTable()
	tbl.TryInsert(1, []byte("a"))
	tbl.TryInsert(2, []byte("b"))
	seen := map[uint64]string{}
	tbl.Range(func(key uint64, encoding []byte) {
		seen[key] = string(encoding)
	})
	if seen[1] != "a" || seen[2] != "b" || len(seen) != 2 {
		t.Errorf("Range saw %v", seen)
	}
}
