// Package corpus collects and filters the set of game-record files a
// mining run will read: file discovery under a direct path, a
// directory, or a directory tree, duplicate-pair rejection, per-test
// sidecar metadata loading, and the engine/book/SPRT filters driven by
// that metadata.
package corpus

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// supportedExt reports whether name carries one of the three game-record
// extensions this tool reads, directly or compressed.
func supportedExt(name string) bool {
	switch {
	case strings.HasSuffix(name, ".pgn"),
		strings.HasSuffix(name, ".pgn.gz"),
		strings.HasSuffix(name, ".pgn.zst"):
		return true
	default:
		return false
	}
}

// Discover builds the candidate file list from a single file path, a
// directory (non-recursive), or a directory tree (recursive). Exactly
// one of file/dir should be non-empty; recursive only applies to dir.
func Discover(file, dir string, recursive bool) ([]string, error) {
	switch {
	case file != "":
		return []string{file}, nil
	case dir != "":
		return discoverDir(dir, recursive)
	default:
		return nil, errNoInputTarget
	}
}

func discoverDir(dir string, recursive bool) ([]string, error) {
	var files []string
	if recursive {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if supportedExt(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return files, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExt(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// SortAndRejectDuplicates sorts files lexicographically and fails if any
// adjacent pair has one path a prefix of the next, which is how a
// "foo.pgn" / "foo.pgn.gz" pair (the same test archived twice) shows
// up: "foo.pgn" is a prefix of "foo.pgn.gz" and sorts right before it.
func SortAndRejectDuplicates(files []string) ([]string, error) {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if strings.HasPrefix(sorted[i], sorted[i-1]) {
			return nil, &DuplicateFileError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}
