// Command imgfetch makes a markdown notes collection readable offline by
// downloading every remote image it references and rewriting the references
// to point at the local copies.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/fwojciec/locimg"
	lmfs "github.com/fwojciec/locimg/fs"
	"github.com/fwojciec/locimg/goldmark"
	lmhttp "github.com/fwojciec/locimg/http"
	"github.com/fwojciec/locimg/localize"
	lmslog "github.com/fwojciec/locimg/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ImageDir    string        `help:"Directory for downloaded images (default: <root>/images)."`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per image."`
	Concurrency int           `short:"c" default:"1" help:"Concurrent fetch limit (1 = sequential)."`
	Retries     int           `default:"3" help:"Retry attempts per failed fetch."`
	RPS         float64       `default:"4" help:"Max requests per second per remote host."`
	DryRun      bool          `help:"List remote image references without downloading or rewriting."`
	Verbose     bool          `short:"v" help:"Enable debug logging."`
	Root        string        `arg:"" required:"" type:"existingdir" help:"Root directory of the notes collection."`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("imgfetch"),
		kong.Description("Download remote images referenced by markdown files and rewrite the references to local paths"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	// Wire dependencies
	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Extractor: goldmark.NewExtractor(),
		Docs:      lmfs.NewDocumentStore(),
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var fetcher locimg.ImageFetcher = lmhttp.NewFetcher(
		lmhttp.WithTimeout(cli.Timeout),
		lmhttp.WithLimiter(lmhttp.NewHostLimiter(cli.RPS)),
	)
	if cli.Verbose {
		fetcher = lmslog.NewLoggingFetcher(fetcher, logger)
	}
	deps.Fetcher = fetcher

	// Dry runs never touch the filesystem, so the asset store (and its
	// directory) is only created for a real run.
	if !cli.DryRun {
		imageDir := cli.ImageDir
		if imageDir == "" {
			imageDir = filepath.Join(cli.Root, "images")
		}
		store, err := lmfs.NewAssetStore(imageDir)
		if err != nil {
			return err
		}
		var assets locimg.AssetStore = store
		if cli.Verbose {
			assets = lmslog.NewLoggingAssetStore(assets, logger)
		}
		deps.Assets = assets

		deps.Localizer = &localize.Localizer{
			Fetcher:     deps.Fetcher,
			Assets:      deps.Assets,
			Memo:        localize.NewMemo(),
			RetryDelays: retryDelays(cli.Retries),
			Concurrency: cli.Concurrency,
		}
		if cli.Verbose {
			deps.Localizer.Log = func(format string, args ...any) {
				logger.Debug(fmt.Sprintf(format, args...))
			}
		}
	}

	cmd := &LocalizeCmd{
		Root:   cli.Root,
		DryRun: cli.DryRun,
	}

	return cmd.Run(deps)
}

// retryDelays builds doubling backoff delays for the requested number of
// retry attempts, starting at one second.
func retryDelays(retries int) []time.Duration {
	if retries <= 0 {
		return []time.Duration{}
	}
	delays := make([]time.Duration, retries)
	d := 1 * time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}
