// Package fs provides file-based storage: an asset store for downloaded
// images and a document store for reading and rewriting markdown files.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/fwojciec/locimg"
)

// Ensure AssetStore implements locimg.AssetStore at compile time.
var _ locimg.AssetStore = (*AssetStore)(nil)

// AssetStore writes downloaded images into a single destination directory
// under collision-free names. Name claims are tracked per run: two different
// URLs whose candidates collide get numeric disambiguators, while a file left
// over from an earlier run is simply overwritten with fresh bytes.
type AssetStore struct {
	dir string

	mu      sync.Mutex
	claimed map[string]string // file name -> remote URL that owns it this run
}

// NewAssetStore creates the destination directory if needed and returns a
// store writing into it.
func NewAssetStore(dir string) (*AssetStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, locimg.Errorf(locimg.EINVALID, "creating image directory %q: %v", dir, err)
	}
	return &AssetStore{
		dir:     dir,
		claimed: make(map[string]string),
	}, nil
}

// Dir returns the destination directory.
func (s *AssetStore) Dir() string {
	return s.dir
}

// Store persists the fetched bytes for url and returns the absolute path of
// the stored file. The bytes are written to a temporary file first and
// renamed into place, so a failed write never leaves a partial file under
// the final name.
func (s *AssetStore) Store(ctx context.Context, rawURL string, res *locimg.FetchResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := s.claim(rawURL, candidateName(rawURL, res))
	final := filepath.Join(s.dir, name)

	tmp := final + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, res.Body, 0644); err != nil {
		_ = os.Remove(tmp)
		return "", locimg.Errorf(locimg.EINTERNAL, "writing %s: %v", final, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", locimg.Errorf(locimg.EINTERNAL, "writing %s: %v", final, err)
	}

	abs, err := filepath.Abs(final)
	if err != nil {
		return final, nil
	}
	return abs, nil
}

// claim atomically reserves a free name for url, appending -1, -2, ... while
// the candidate is held by a different URL.
func (s *AssetStore) claim(rawURL, candidate string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ext := path.Ext(candidate)
	stem := strings.TrimSuffix(candidate, ext)

	name := candidate
	for i := 1; ; i++ {
		owner, taken := s.claimed[name]
		if !taken || owner == rawURL {
			break
		}
		name = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	s.claimed[name] = rawURL
	return name
}

// candidateName derives a local file name for the URL: the sanitized basename
// of the URL path, or, when the path yields no usable name, a hash of the
// fetched bytes with an inferred extension.
func candidateName(rawURL string, res *locimg.FetchResult) string {
	var base string
	if u, err := url.Parse(rawURL); err == nil {
		base = sanitizeName(path.Base(u.Path))
	}
	if usableName(base) {
		return base
	}
	return fmt.Sprintf("%x%s", xxhash.Sum64(res.Body), inferExtension(rawURL, res.ContentType))
}

// usableName reports whether a sanitized basename identifies a file: it must
// be non-trivial and carry an extension, otherwise hash naming is used.
func usableName(base string) bool {
	if base == "" || base == "." || base == "/" {
		return false
	}
	ext := path.Ext(base)
	return ext != "" && ext != base
}

// sanitizeName decodes percent-escapes and strips characters that are not
// portable in file names.
func sanitizeName(base string) string {
	if decoded, err := url.PathUnescape(base); err == nil {
		base = decoded
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-.")
}

// contentTypeExts maps common image content types to file extensions.
// Preferred over the URL suffix because the server knows what it served.
var contentTypeExts = map[string]string{
	"image/apng":    ".png",
	"image/avif":    ".avif",
	"image/bmp":     ".bmp",
	"image/gif":     ".gif",
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/svg+xml": ".svg",
	"image/tiff":    ".tiff",
	"image/webp":    ".webp",
	"image/x-icon":  ".ico",
}

// inferExtension picks an extension from the Content-Type header, then the
// URL suffix, then falls back to a generic binary extension.
func inferExtension(rawURL, contentType string) string {
	ct := contentType
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ext, ok := contentTypeExts[ct]; ok {
		return ext
	}
	if u, err := url.Parse(rawURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" && len(ext) <= 5 {
			return ext
		}
	}
	return ".bin"
}
