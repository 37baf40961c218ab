package corpus

import (
	"errors"
	"fmt"
)

// errNoInputTarget is returned by Discover when neither --file nor
// --dir was given; the caller treats it as a configuration error and
// exits non-zero before any work starts.
var errNoInputTarget = errors.New("corpus: no --file or --dir target given")

// DuplicateFileError reports that two discovered file paths collide
// once sorted, i.e. one is a lexicographic prefix of the other.
type DuplicateFileError struct {
	First, Second string
}

func (e *DuplicateFileError) Error() string {
	return fmt.Sprintf("corpus: duplicate file pair %q / %q", e.First, e.Second)
}

// DuplicateTestError reports that the same test filename (after
// stripping its trailing "-<index>") was seen under two different
// directories. Fatal unless the run was started with --allowDuplicates.
type DuplicateTestError struct {
	TestName       string
	First, Second  string
}

func (e *DuplicateTestError) Error() string {
	return fmt.Sprintf("corpus: duplicate test %q found at both %q and %q", e.TestName, e.First, e.Second)
}
