// Package goldmark provides a goldmark-based implementation of
// locimg.RefExtractor. The markdown is parsed once so fenced code blocks,
// indented code blocks, inline code spans, and raw HTML regions are located
// structurally; image references inside code are never emitted, and raw HTML
// regions are scanned separately for <img> tags.
package goldmark

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/fwojciec/locimg"
)

// Ensure Extractor implements locimg.RefExtractor at compile time.
var _ locimg.RefExtractor = (*Extractor)(nil)

// Extractor finds remote image references in markdown text.
type Extractor struct {
	md goldmark.Markdown
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		md: goldmark.New(),
	}
}

// span is a half-open byte range within the source text.
type span struct {
	start, stop int
}

func (s span) overlaps(start, stop int) bool {
	return start < s.stop && stop > s.start
}

// Extract returns remote image references in document order with
// non-overlapping spans.
func (e *Extractor) Extract(src string) ([]locimg.ImageRef, error) {
	source := []byte(src)
	root := e.md.Parser().Parse(text.NewReader(source))

	var excluded []span // code and raw HTML regions, never matched by regex
	var html []span     // raw HTML regions, scanned for <img> tags

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			if s, ok := linesSpan(n.Lines()); ok {
				excluded = append(excluded, s)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindCodeSpan:
			if s, ok := childTextSpan(n); ok {
				excluded = append(excluded, s)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindHTMLBlock:
			blk := n.(*ast.HTMLBlock)
			s, ok := linesSpan(n.Lines())
			if blk.HasClosure() {
				closure := blk.ClosureLine
				if !ok {
					s, ok = span{closure.Start, closure.Stop}, true
				} else {
					s.stop = closure.Stop
				}
			}
			if ok {
				excluded = append(excluded, s)
				html = append(html, s)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindRawHTML:
			raw := n.(*ast.RawHTML)
			if s, ok := segmentsSpan(raw.Segments); ok {
				excluded = append(excluded, s)
				html = append(html, s)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, locimg.Errorf(locimg.EINTERNAL, "walking markdown AST: %v", err)
	}

	var refs []locimg.ImageRef
	refs = append(refs, matchInline(src, excluded)...)
	refs = append(refs, matchRefDefs(src, excluded)...)
	for _, region := range html {
		refs = append(refs, matchHTMLImages(src, region)...)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Start < refs[j].Start })

	// Drop any overlap with an earlier span so sequential substitution
	// cannot corrupt the text.
	out := refs[:0]
	last := -1
	for _, r := range refs {
		if r.Start < last {
			continue
		}
		out = append(out, r)
		last = r.End
	}
	return out, nil
}

// linesSpan returns the byte range covered by a block node's lines.
func linesSpan(lines *text.Segments) (span, bool) {
	if lines == nil || lines.Len() == 0 {
		return span{}, false
	}
	return span{lines.At(0).Start, lines.At(lines.Len() - 1).Stop}, true
}

// segmentsSpan returns the byte range covered by an inline node's segments.
func segmentsSpan(segs *text.Segments) (span, bool) {
	if segs == nil || segs.Len() == 0 {
		return span{}, false
	}
	return span{segs.At(0).Start, segs.At(segs.Len() - 1).Stop}, true
}

// childTextSpan returns the byte range covered by a node's text children.
func childTextSpan(n ast.Node) (span, bool) {
	s := span{start: -1}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			continue
		}
		if s.start < 0 || t.Segment.Start < s.start {
			s.start = t.Segment.Start
		}
		if t.Segment.Stop > s.stop {
			s.stop = t.Segment.Stop
		}
	}
	return s, s.start >= 0
}

func excludedAt(excluded []span, start, stop int) bool {
	for _, s := range excluded {
		if s.overlaps(start, stop) {
			return true
		}
	}
	return false
}

// matchHTMLImages scans one raw HTML region for <img src="http(s)://..."> and
// emits a reference whose span covers only the src attribute value. goquery
// unescapes entities, so a src value that cannot be located verbatim in the
// source region is skipped rather than guessed at.
func matchHTMLImages(src string, region span) []locimg.ImageRef {
	fragment := src[region.start:region.stop]
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var refs []locimg.ImageRef
	searchFrom := 0
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		val, ok := sel.Attr("src")
		if !ok || !isRemote(val) {
			return
		}
		idx := strings.Index(fragment[searchFrom:], val)
		if idx < 0 {
			return
		}
		start := region.start + searchFrom + idx
		end := start + len(val)
		searchFrom += idx + len(val)
		refs = append(refs, locimg.ImageRef{
			RemoteURL: val,
			RawMatch:  val,
			Start:     start,
			End:       end,
			URLStart:  start,
			URLEnd:    end,
		})
	})
	return refs
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
