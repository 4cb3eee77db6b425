package locimg

import "context"

// Status classifies how a reference (or a memoized download) was handled.
type Status string

// Status values.
const (
	// StatusFetched means the image bytes were retrieved over the network
	// during this run.
	StatusFetched Status = "fetched"

	// StatusSkipped means no network call was made because the URL was
	// already resolved earlier in the run; the reference shares that
	// download's local path.
	StatusSkipped Status = "skipped"

	// StatusFailed means the URL could not be fetched; the reference is
	// left unmodified in the document.
	StatusFailed Status = "failed"
)

// DownloadRecord is the run-scoped memo entry for one distinct remote URL.
// At most one network fetch happens per distinct URL per run; every reference
// sharing the URL resolves to the same LocalPath.
type DownloadRecord struct {
	RemoteURL string
	LocalPath string
	Status    Status
}

// Outcome reports how a single reference was handled, for the end-of-run
// summary.
type Outcome struct {
	Ref       ImageRef
	LocalPath string
	Status    Status
	Err       error
}

// AssetStore persists fetched image bytes under collision-free names.
//
// Within one destination directory, no two different remote URLs ever map to
// the same local path: implementations must disambiguate names claimed for
// other URLs during the run. Partial files must not survive a failed write.
type AssetStore interface {
	// Store writes the fetched bytes for url and returns the absolute path
	// of the stored file.
	Store(ctx context.Context, url string, res *FetchResult) (string, error)
}
