package main

import (
	"fmt"

	"github.com/fwojciec/locimg"
)

// fileFailure records one reference that could not be localized, for the
// final summary.
type fileFailure struct {
	path string
	url  string
	err  error
}

// Run executes the localize command: walk the root, process each markdown
// file, and print a per-file line plus a final summary. Per-image fetch
// failures and per-document write failures are warnings; only setup-level
// problems return an error.
func (c *LocalizeCmd) Run(deps *Dependencies) error {
	files, err := MarkdownFiles(c.Root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locimg.ErrorMessage(err))
		return err
	}

	if c.DryRun {
		return c.runDry(deps, files)
	}

	var failures []fileFailure
	totalLocalized := 0

	for _, path := range files {
		doc, err := deps.Docs.Read(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", path, locimg.ErrorMessage(err))
			continue
		}

		refs, err := deps.Extractor.Extract(doc.Text)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", path, locimg.ErrorMessage(err))
			continue
		}
		if len(refs) == 0 {
			continue
		}

		rewritten, outcomes, err := deps.Localizer.Localize(deps.Ctx, doc, refs)
		if err != nil {
			// Document abandoned; the original file is untouched.
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", path, locimg.ErrorMessage(err))
			failures = append(failures, collectFailures(path, outcomes)...)
			continue
		}

		if rewritten != doc.Text {
			if err := deps.Docs.Write(doc, rewritten); err != nil {
				fmt.Fprintf(deps.Stderr, "skip %s: %s\n", path, locimg.ErrorMessage(err))
				continue
			}
		}

		var localized, reused, failed int
		for _, outcome := range outcomes {
			switch outcome.Status {
			case locimg.StatusFetched:
				localized++
			case locimg.StatusSkipped:
				reused++
			case locimg.StatusFailed:
				failed++
			}
		}
		totalLocalized += localized + reused
		failures = append(failures, collectFailures(path, outcomes)...)

		fmt.Fprintf(deps.Stdout, "%s: %d localized, %d reused, %d failed\n", path, localized, reused, failed)
	}

	fmt.Fprintf(deps.Stdout, "Processed %d files, localized %d references\n", len(files), totalLocalized)

	if len(failures) > 0 {
		fmt.Fprintln(deps.Stdout, "\nFailed URLs:")
		for _, f := range failures {
			fmt.Fprintf(deps.Stdout, "  %s: %s (%s)\n", f.path, f.url, locimg.ErrorMessage(f.err))
		}
	}

	return nil
}

// runDry lists the remote references that would be localized, without
// fetching or rewriting anything.
func (c *LocalizeCmd) runDry(deps *Dependencies, files []string) error {
	for _, path := range files {
		doc, err := deps.Docs.Read(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", path, locimg.ErrorMessage(err))
			continue
		}
		refs, err := deps.Extractor.Extract(doc.Text)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", path, locimg.ErrorMessage(err))
			continue
		}
		for _, ref := range refs {
			fmt.Fprintf(deps.Stdout, "%s: %s\n", path, ref.RemoteURL)
		}
	}
	return nil
}

func collectFailures(path string, outcomes []locimg.Outcome) []fileFailure {
	var failures []fileFailure
	for _, outcome := range outcomes {
		if outcome.Status == locimg.StatusFailed {
			failures = append(failures, fileFailure{path: path, url: outcome.Ref.RemoteURL, err: outcome.Err})
		}
	}
	return failures
}
