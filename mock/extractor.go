package mock

import "github.com/fwojciec/locimg"

var _ locimg.RefExtractor = (*RefExtractor)(nil)

// RefExtractor is a mock implementation of locimg.RefExtractor.
type RefExtractor struct {
	ExtractFn func(text string) ([]locimg.ImageRef, error)
}

func (e *RefExtractor) Extract(text string) ([]locimg.ImageRef, error) {
	return e.ExtractFn(text)
}
