package main

import (
	"context"
	"io"

	"github.com/fwojciec/locimg"
	"github.com/fwojciec/locimg/localize"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Extractor locimg.RefExtractor
	Fetcher   locimg.ImageFetcher
	Assets    locimg.AssetStore
	Docs      locimg.DocumentStore
	Localizer *localize.Localizer
}

// LocalizeCmd handles the main localize operation.
type LocalizeCmd struct {
	Root   string
	DryRun bool
}
