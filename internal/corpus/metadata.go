package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TestMetadata is the decoded shape of a test's sidecar JSON file. Only
// the fields the filters and the fixFEN workaround consume are kept;
// unrecognized keys in the sidecar are ignored.
type TestMetadata struct {
	Book      string
	HasBook   bool
	SPRT      bool
	HasSPRT   bool
	BookDepth int
}

// rawSidecar mirrors the on-disk JSON shape: `{"args": {"book": "...",
// "sprt": ..., "book_depth": "7"}}`. book_depth arrives as a decimal
// string, not a JSON number, and is parsed on load.
type rawSidecar struct {
	Args struct {
		Book      *string         `json:"book"`
		SPRT      json.RawMessage `json:"sprt"`
		BookDepth *string         `json:"book_depth"`
	} `json:"args"`
}

// testFilename derives the "test filename" key a sidecar is registered
// under: the file's base name with its extension(s) removed and any
// trailing "-<index>" stripped (repeated games/shards of the same test
// are numbered that way).
func testFilename(file string) string {
	base := filepath.Base(file)
	for _, ext := range []string{".pgn.zst", ".pgn.gz", ".pgn"} {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	if i := strings.LastIndexByte(base, '-'); i >= 0 {
		if isAllDigits(base[i+1:]) {
			base = base[:i]
		}
	}
	return base
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func sidecarPath(file string) string {
	return filepath.Join(filepath.Dir(file), testFilename(file)+".json")
}

func loadSidecar(path string) (TestMetadata, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return TestMetadata{}, false, nil
		}
		return TestMetadata{}, false, err
	}
	var raw rawSidecar
	if err := json.Unmarshal(data, &raw); err != nil {
		return TestMetadata{}, false, err
	}
	meta := TestMetadata{}
	if raw.Args.Book != nil {
		meta.Book = *raw.Args.Book
		meta.HasBook = true
	}
	if len(raw.Args.SPRT) > 0 && string(raw.Args.SPRT) != "null" {
		meta.HasSPRT = true
		meta.SPRT = isTruthyJSON(raw.Args.SPRT)
	}
	if raw.Args.BookDepth != nil {
		// Locale-independent: strconv.Atoi always parses decimal ASCII,
		// never the host locale's digit grouping or separators.
		if depth, err := strconv.Atoi(strings.TrimSpace(*raw.Args.BookDepth)); err == nil {
			meta.BookDepth = depth
		}
	}
	return meta, true, nil
}

// isTruthyJSON reports whether a raw JSON value counts as "truthy" for
// the sprt flag: present and not false/0/""/null.
func isTruthyJSON(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	switch s {
	case "", "null", "false", "0", `""`:
		return false
	default:
		return true
	}
}

// TestMetadataSet maps a test filename to its loaded sidecar metadata,
// and to the first file path that test was seen at (for duplicate
// reporting).
type TestMetadataSet struct {
	byTest    map[string]TestMetadata
	firstFile map[string]string
}

// GetMetadata loads the per-test sidecar metadata for files, keyed by
// test filename. A test appearing under two different directories is a
// DuplicateTestError unless allowDuplicates is set, in which case the
// first-seen sidecar wins and later duplicates are ignored.
func GetMetadata(files []string, allowDuplicates bool) (*TestMetadataSet, error) {
	set := &TestMetadataSet{
		byTest:    make(map[string]TestMetadata),
		firstFile: make(map[string]string),
	}
	for _, file := range files {
		test := testFilename(file)
		dir := filepath.Dir(file)
		if prevDir, seen := set.firstFile[test]; seen {
			if prevDir != dir {
				if !allowDuplicates {
					return nil, &DuplicateTestError{TestName: test, First: prevDir, Second: dir}
				}
			}
			continue
		}
		set.firstFile[test] = dir
		meta, ok, err := loadSidecar(sidecarPath(file))
		if err != nil {
			return nil, err
		}
		if ok {
			set.byTest[test] = meta
		}
	}
	return set, nil
}

// Lookup returns the metadata registered for file's test, if any.
func (s *TestMetadataSet) Lookup(file string) (TestMetadata, bool) {
	meta, ok := s.byTest[testFilename(file)]
	return meta, ok
}
