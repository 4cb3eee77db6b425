package mock

import "github.com/fwojciec/locimg"

var _ locimg.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of locimg.DocumentStore.
type DocumentStore struct {
	ReadFn  func(path string) (*locimg.Document, error)
	WriteFn func(doc *locimg.Document, text string) error
}

func (s *DocumentStore) Read(path string) (*locimg.Document, error) {
	return s.ReadFn(path)
}

func (s *DocumentStore) Write(doc *locimg.Document, text string) error {
	return s.WriteFn(doc, text)
}
