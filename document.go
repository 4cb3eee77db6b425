package locimg

// Document is one markdown file being processed. Text is read-only input;
// rewriting produces a new value, and the file on disk is overwritten only
// after a fully rewritten text exists.
type Document struct {
	Path string
	Text string
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Path == "" {
		return Errorf(EINVALID, "document path required")
	}
	return nil
}

// DocumentStore reads markdown documents and writes rewritten text back.
type DocumentStore interface {
	// Read loads the document at path.
	Read(path string) (*Document, error)

	// Write overwrites the document with text. The original file must
	// survive intact if the write fails partway.
	Write(doc *Document, text string) error
}
