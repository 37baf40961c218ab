package corpus

import "regexp"

// FilterSPRT keeps only files whose test metadata carries a truthy sprt
// flag; files with no metadata, or metadata lacking sprt entirely, are
// dropped.
func FilterSPRT(files []string, meta *TestMetadataSet) []string {
	var out []string
	for _, f := range files {
		m, ok := meta.Lookup(f)
		if ok && m.HasSPRT && m.SPRT {
			out = append(out, f)
		}
	}
	return out
}

// FilterBook keeps files whose test's book value matches re, or (when
// invert is set) whose book value does not match re. Files lacking
// metadata, or metadata lacking a book field, are always dropped
// regardless of invert.
func FilterBook(files []string, meta *TestMetadataSet, re *regexp.Regexp, invert bool) []string {
	var out []string
	for _, f := range files {
		m, ok := meta.Lookup(f)
		if !ok || !m.HasBook {
			continue
		}
		matched := re.MatchString(m.Book)
		if matched != invert {
			out = append(out, f)
		}
	}
	return out
}
