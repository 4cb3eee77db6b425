package goldmark

import (
	"regexp"

	"github.com/fwojciec/locimg"
)

// inlineImageRe matches the inline image construct ![alt](url) with an
// optional quoted title. Only http(s) destinations are matched, so relative
// paths, data: URLs, and empty destinations never qualify. Alt text with
// nested brackets is not recognized, matching the scope of the simple syntax
// this tool targets.
var inlineImageRe = regexp.MustCompile(`!\[[^\]\n]*\]\(\s*(https?://[^)\s]+)(?:\s+("[^"\n]*"|'[^'\n]*'))?\s*\)`)

// refDefRe matches a reference-style link definition whose destination is a
// remote URL, e.g. `[logo]: https://example.com/logo.png`.
var refDefRe = regexp.MustCompile(`(?m)^ {0,3}\[[^\]\n]+\]:[ \t]*(https?://[^\s]+)[ \t]*$`)

// matchInline finds inline image constructs outside the excluded regions.
// The replaced span covers the whole construct.
func matchInline(src string, excluded []span) []locimg.ImageRef {
	var refs []locimg.ImageRef
	for _, m := range inlineImageRe.FindAllStringSubmatchIndex(src, -1) {
		start, end := m[0], m[1]
		if excludedAt(excluded, start, end) {
			continue
		}
		urlStart, urlEnd := m[2], m[3]
		refs = append(refs, locimg.ImageRef{
			RemoteURL: src[urlStart:urlEnd],
			RawMatch:  src[start:end],
			Start:     start,
			End:       end,
			URLStart:  urlStart,
			URLEnd:    urlEnd,
		})
	}
	return refs
}

// matchRefDefs finds reference-style definitions outside the excluded
// regions. The replaced span covers the definition line, so the label
// survives and only the destination is swapped.
func matchRefDefs(src string, excluded []span) []locimg.ImageRef {
	var refs []locimg.ImageRef
	for _, m := range refDefRe.FindAllStringSubmatchIndex(src, -1) {
		start, end := m[0], m[1]
		if excludedAt(excluded, start, end) {
			continue
		}
		urlStart, urlEnd := m[2], m[3]
		refs = append(refs, locimg.ImageRef{
			RemoteURL: src[urlStart:urlEnd],
			RawMatch:  src[start:end],
			Start:     start,
			End:       end,
			URLStart:  urlStart,
			URLEnd:    urlEnd,
		})
	}
	return refs
}
