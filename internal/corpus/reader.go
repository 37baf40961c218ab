package corpus

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// OpenGameFile opens file and returns a reader over its decompressed
// game-record text, dispatching on extension: plain for ".pgn", gzip
// for ".pgn.gz", zstd for ".pgn.zst". The returned closer must be
// called by the caller once the reader is drained.
func OpenGameFile(file string) (io.Reader, io.Closer, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case strings.HasSuffix(file, ".pgn.gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("corpus: %s: %w", file, err)
		}
		return gz, multiCloser{gz, f}, nil
	case strings.HasSuffix(file, ".pgn.zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("corpus: %s: %w", file, err)
		}
		rc := dec.IOReadCloser()
		return rc, multiCloser{rc, f}, nil
	default:
		return f, f, nil
	}
}

// multiCloser closes each of its members in order, returning the first
// error encountered.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
