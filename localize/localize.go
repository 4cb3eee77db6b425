package localize

import (
	"context"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/locimg"
)

// Localizer resolves a document's remote image references to local files and
// produces the rewritten document text. Fetch failures are soft: the
// reference keeps its original text and processing continues. Storage
// failures abandon the current document's rewrite but leave the memo and
// other documents intact.
type Localizer struct {
	Fetcher locimg.ImageFetcher
	Assets  locimg.AssetStore
	Memo    *Memo

	// RetryDelays are the backoff delays for failed fetch attempts.
	// Defaults to DefaultRetryDelays() if nil.
	RetryDelays []time.Duration

	// Concurrency bounds how many references are resolved in parallel.
	// Values below 2 give the sequential baseline with deterministic
	// disambiguator numbering.
	Concurrency int

	// Log, if set, receives retry notices.
	Log LogFunc
}

// Localize resolves every reference of doc in order and returns the
// rewritten text plus a per-reference outcome report. The returned error is
// non-nil only for document-fatal failures (asset storage errors, context
// cancellation); in that case the rewritten text is empty and the caller
// must leave the original document untouched.
func (l *Localizer) Localize(ctx context.Context, doc *locimg.Document, refs []locimg.ImageRef) (string, []locimg.Outcome, error) {
	if err := doc.Validate(); err != nil {
		return "", nil, err
	}
	if err := validateSpans(doc.Text, refs); err != nil {
		return "", nil, err
	}

	docDir, err := filepath.Abs(filepath.Dir(doc.Path))
	if err != nil {
		return "", nil, locimg.Errorf(locimg.EINVALID, "resolving document directory: %v", err)
	}

	delays := l.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	outcomes := make([]locimg.Outcome, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range refs {
		g.Go(func() error {
			ref := refs[i]
			rec, reused, resolveErr := l.Memo.Resolve(gctx, ref.RemoteURL, func() (string, error) {
				res, fetchErr := FetchWithRetryDelays(gctx, ref.RemoteURL, l.Fetcher.Fetch, l.Log, delays)
				if fetchErr != nil {
					return "", fetchErr
				}
				return l.Assets.Store(gctx, ref.RemoteURL, res)
			})

			outcome := locimg.Outcome{
				Ref:       ref,
				LocalPath: rec.LocalPath,
				Status:    rec.Status,
				Err:       resolveErr,
			}
			if rec.Status == locimg.StatusFetched && reused {
				outcome.Status = locimg.StatusSkipped
			}
			outcomes[i] = outcome

			// A storage failure is fatal for the document that triggered
			// it; fetch failures and memoized failures from earlier
			// documents are per-reference only.
			if resolveErr != nil && !reused && locimg.ErrorCode(resolveErr) == locimg.EINTERNAL {
				return resolveErr
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return "", outcomes, err
	}

	// Write-back paths are relative to the document's own directory so the
	// document stays portable when moved together with its assets.
	paths := make([]string, len(refs))
	for i, outcome := range outcomes {
		if outcome.Status == locimg.StatusFailed {
			continue
		}
		rel, relErr := filepath.Rel(docDir, outcome.LocalPath)
		if relErr != nil {
			outcomes[i].Status = locimg.StatusFailed
			outcomes[i].Err = locimg.Errorf(locimg.EINTERNAL, "relativizing %s: %v", outcome.LocalPath, relErr)
			continue
		}
		paths[i] = filepath.ToSlash(rel)
	}

	return Rewrite(doc.Text, refs, paths), outcomes, nil
}
