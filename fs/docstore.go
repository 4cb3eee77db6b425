package fs

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fwojciec/locimg"
)

// Ensure DocumentStore implements locimg.DocumentStore at compile time.
var _ locimg.DocumentStore = (*DocumentStore)(nil)

// DocumentStore reads markdown documents and overwrites them in place.
// Writes go through a temporary file in the same directory followed by a
// rename, so the original document survives a failed write intact.
type DocumentStore struct{}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

// Read loads the document at path.
func (s *DocumentStore) Read(path string) (*locimg.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, locimg.Errorf(locimg.ENOTFOUND, "document %q not found", path)
		}
		return nil, locimg.Errorf(locimg.EINTERNAL, "reading %s: %v", path, err)
	}
	return &locimg.Document{Path: path, Text: string(data)}, nil
}

// Write overwrites the document with text.
func (s *DocumentStore) Write(doc *locimg.Document, text string) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(doc.Path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp := filepath.Join(filepath.Dir(doc.Path), "."+filepath.Base(doc.Path)+".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, []byte(text), mode); err != nil {
		_ = os.Remove(tmp)
		return locimg.Errorf(locimg.EINTERNAL, "writing %s: %v", doc.Path, err)
	}
	if err := os.Rename(tmp, doc.Path); err != nil {
		_ = os.Remove(tmp)
		return locimg.Errorf(locimg.EINTERNAL, "writing %s: %v", doc.Path, err)
	}
	return nil
}
