package locimg

// ImageRef is a single occurrence of a remote image reference inside one
// document's text. Start and End delimit the exact byte span that will be
// replaced; URLStart and URLEnd delimit the destination URL within that span,
// so a rewrite swaps only the destination and leaves alt text, titles, and
// attribute quoting untouched.
type ImageRef struct {
	// RemoteURL is the http(s) URL of the referenced image.
	RemoteURL string

	// RawMatch is the exact substring of the document covered by [Start, End).
	RawMatch string

	// Start and End are byte offsets of the replaced span within the
	// original document text. Spans produced by an extractor never overlap
	// and appear in document order.
	Start int
	End   int

	// URLStart and URLEnd are byte offsets of RemoteURL within the document.
	// Invariant: Start <= URLStart <= URLEnd <= End.
	URLStart int
	URLEnd   int
}

// Validate returns an error if the reference's offsets are inconsistent.
func (r *ImageRef) Validate() error {
	if r.RemoteURL == "" {
		return Errorf(EINVALID, "image reference URL required")
	}
	if r.Start > r.URLStart || r.URLStart > r.URLEnd || r.URLEnd > r.End {
		return Errorf(EINVALID, "image reference offsets out of order")
	}
	if r.End-r.Start != len(r.RawMatch) {
		return Errorf(EINVALID, "image reference span does not cover raw match")
	}
	return nil
}

// Rewrite returns the replacement text for the span: the original construct
// with the remote URL swapped for localPath.
func (r *ImageRef) Rewrite(localPath string) string {
	return r.RawMatch[:r.URLStart-r.Start] + localPath + r.RawMatch[r.URLEnd-r.Start:]
}

// RefExtractor scans raw markdown text and produces remote image references
// in document order with non-overlapping spans.
//
// A reference qualifies as remote only if its URL scheme is http or https;
// relative paths and data: URLs are never emitted. References inside fenced
// code blocks, indented code blocks, and inline code spans are never emitted.
type RefExtractor interface {
	Extract(text string) ([]ImageRef, error)
}
