package localize

import (
	"strings"

	"github.com/fwojciec/locimg"
)

// Rewrite rebuilds text from the non-overlapping reference spans, replacing
// span i with refs[i].Rewrite(paths[i]). An empty path leaves that span
// untouched, so a failed reference keeps its original raw match byte for
// byte. Text outside the spans is copied verbatim; a naive find-and-replace
// by URL would also alter coincidental occurrences of the URL string outside
// a reference span.
func Rewrite(text string, refs []locimg.ImageRef, paths []string) string {
	var b strings.Builder
	b.Grow(len(text))

	last := 0
	for i, ref := range refs {
		if paths[i] == "" {
			continue
		}
		b.WriteString(text[last:ref.Start])
		b.WriteString(ref.Rewrite(paths[i]))
		last = ref.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// validateSpans checks that references appear in document order with
// non-overlapping spans inside the text.
func validateSpans(text string, refs []locimg.ImageRef) error {
	last := 0
	for i := range refs {
		ref := &refs[i]
		if err := ref.Validate(); err != nil {
			return err
		}
		if ref.Start < last {
			return locimg.Errorf(locimg.EINVALID, "reference spans overlap at offset %d", ref.Start)
		}
		if ref.End > len(text) {
			return locimg.Errorf(locimg.EINVALID, "reference span exceeds document length")
		}
		if text[ref.Start:ref.End] != ref.RawMatch {
			return locimg.Errorf(locimg.EINVALID, "reference span does not match document text at offset %d", ref.Start)
		}
		last = ref.End
	}
	return nil
}
