package miner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"fastpopular/internal/chess"
	"fastpopular/internal/corpus"
	"fastpopular/internal/pgn"
	"fastpopular/internal/shard"
)

// Run is the fixed worker-pool execution of C6's steps 4-6: chunk the
// file list, run one goroutine per chunk under an errgroup with a
// concurrency cap, and drain the tables into the output on completion.
// Per-file read/parse errors are logged and do not abort the run; the
// only error Execute returns is a failure to flush the output Writer.
type Run struct {
	Files       []string
	Concurrency int
	Filters     *Filters
	Meta        *corpus.TestMetadataSet
	Counts      *shard.CountTable
	Canonical   *shard.CanonicalTable
	Writer      *Writer
	Totals      *Totals

	// Logf receives progress and per-file error lines; nil discards them.
	Logf func(format string, args ...interface{})

	totalFiles int64
}

// Execute partitions r.Files into ceil(4*concurrency) contiguous
// chunks and runs them across a pool capped at r.Concurrency.
func (r *Run) Execute(ctx context.Context) error {
	chunks := chunkFiles(r.Files, r.Concurrency)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)

	var progressMu sync.Mutex

	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			for _, file := range chunk {
				select {
				case <-ctx.Done():
					return nil
				default:
				}
				r.processFile(file)
				n := atomic.AddInt64(&r.totalFiles, 1)
				progressMu.Lock()
				if r.Logf != nil {
					r.Logf("processed %d/%d files (last: %s)", n, len(r.Files), file)
				}
				progressMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if r.Filters.SaveCount {
		r.emitSavedCounts()
	}
	return r.Writer.Flush()
}

// chunkFiles splits files into ceil(4*concurrency) contiguous, roughly
// even-sized pieces, per spec.md §4.6 step 4.
func chunkFiles(files []string, concurrency int) [][]string {
	if concurrency < 1 {
		concurrency = 1
	}
	n := 4 * concurrency
	if n > len(files) {
		n = len(files)
	}
	if n == 0 {
		return nil
	}
	chunks := make([][]string, 0, n)
	base := len(files) / n
	rem := len(files) % n
	i := 0
	for c := 0; c < n; c++ {
		size := base
		if c < rem {
			size++
		}
		if size == 0 {
			continue
		}
		chunks = append(chunks, files[i:i+size])
		i += size
	}
	return chunks
}

func (r *Run) processFile(file string) {
	reader, closer, err := corpus.OpenGameFile(file)
	if err != nil {
		if r.Logf != nil {
			r.Logf("error opening %s: %v", file, err)
		}
		return
	}
	defer closer.Close()

	v := NewVisitor(r.Filters, r.Meta, file, r.Counts, r.Canonical, r.Writer, r.Totals)
	if err := pgn.Drive(reader, v); err != nil {
		if r.Logf != nil {
			r.Logf("error parsing %s: %v", file, err)
		}
	}
}

// emitSavedCounts drains the canonical table once every worker has
// joined, per spec.md §4.6 step 6.
func (r *Run) emitSavedCounts() {
	r.Canonical.Range(func(key uint64, encoding []byte) {
		pos, err := chess.Decode(encoding)
		if err != nil {
			if r.Logf != nil {
				r.Logf("error decoding saved position: %v", err)
			}
			return
		}
		count, _ := r.Counts.Get(key)
		r.Writer.WriteLine(fmt.Sprintf("%s ; c0 %d", pos.GetFEN(false), count))
	})
}
