// Package localize implements the URL-to-local-path resolution and rewrite
// pipeline: for each extracted reference it resolves a collision-free local
// path, fetches and stores the bytes once per distinct URL, and produces a
// rewritten document text with the resolved references substituted.
package localize

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/fwojciec/locimg"
)

// Memo is the run-scoped download memo shared across all documents processed
// in one invocation. It guarantees at most one network fetch per distinct
// remote URL per run: concurrent references to the same URL await the
// in-flight resolution instead of duplicating it, and later references reuse
// the recorded result without a network call.
type Memo struct {
	mu      sync.Mutex
	records map[string]memoEntry
	group   singleflight.Group
}

type memoEntry struct {
	rec locimg.DownloadRecord
	err error
}

// NewMemo creates an empty memo. Each run (and each test) should use its own
// instance; the memo is never process-wide state.
func NewMemo() *Memo {
	return &Memo{
		records: make(map[string]memoEntry),
	}
}

// Resolve returns the download record for url, invoking resolve at most once
// per URL per run. resolve must fetch the bytes and return the stored local
// path. reused reports whether the returned record came from an earlier
// resolution (or from awaiting one in flight) rather than from this call.
//
// A failure caused by context cancellation is returned but not recorded, so
// an aborted run's in-flight URLs stay resolvable for later callers.
func (m *Memo) Resolve(ctx context.Context, url string, resolve func() (string, error)) (rec locimg.DownloadRecord, reused bool, err error) {
	m.mu.Lock()
	if entry, ok := m.records[url]; ok {
		m.mu.Unlock()
		return entry.rec, true, entry.err
	}
	m.mu.Unlock()

	executed := false
	v, _, _ := m.group.Do(url, func() (any, error) {
		executed = true

		localPath, resolveErr := resolve()
		entry := memoEntry{
			rec: locimg.DownloadRecord{
				RemoteURL: url,
				LocalPath: localPath,
				Status:    locimg.StatusFetched,
			},
			err: resolveErr,
		}
		if resolveErr != nil {
			entry.rec.LocalPath = ""
			entry.rec.Status = locimg.StatusFailed
			if ctx.Err() != nil {
				// Canceled mid-flight; not a verdict on the URL.
				return entry, nil
			}
		}

		m.mu.Lock()
		m.records[url] = entry
		m.mu.Unlock()
		return entry, nil
	})

	entry := v.(memoEntry)
	return entry.rec, !executed, entry.err
}

// Records returns a snapshot of all recorded downloads, for reporting.
func (m *Memo) Records() []locimg.DownloadRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs := make([]locimg.DownloadRecord, 0, len(m.records))
	for _, entry := range m.records {
		recs = append(recs, entry.rec)
	}
	return recs
}
