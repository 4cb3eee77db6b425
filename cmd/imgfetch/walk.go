package main

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fwojciec/locimg"
)

// MarkdownFiles recursively enumerates markdown files beneath root in lexical
// order. Hidden directories (e.g. .git) are skipped.
func MarkdownFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isMarkdown(name) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, locimg.Errorf(locimg.EINVALID, "walking %q: %v", root, err)
	}
	return files, nil
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
