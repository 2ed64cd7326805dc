package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sigstub"
	"github.com/fwojciec/sigstub/crawl"
	"github.com/fwojciec/sigstub/fs"
	"github.com/fwojciec/sigstub/goquery"
	stubhttp "github.com/fwojciec/sigstub/http"
	stubslog "github.com/fwojciec/sigstub/slog"
	"github.com/fwojciec/sigstub/sqlite"
	"github.com/google/uuid"
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
type Main struct {
	// SQLite database backing the page cache when --cache-db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sigstub"),
		kong.Description("Generate annotated Standard ML signature stubs from HTML library manuals"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	lib, err := cli.library()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString(), "library", lib.Name)

	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   logger,
		Reporter: stubslog.NewWarningReporter(logger),
	}

	fetcher := stubhttp.NewFetcher(stubhttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()

	deps.Harvester = &crawl.Harvester{
		Fetcher:     stubslog.NewLoggingFetcher(fetcher, logger),
		Selector:    goquery.NewSelector(lib.LinkSelector),
		RateLimiter: crawl.NewDomainLimiter(cli.RPS, 1),
		Concurrency: cli.Concurrency,
		Logger:      logger,
	}

	var cache sigstub.PageCache
	if cli.CacheDB != "" {
		m.DB = sqlite.NewDB(cli.CacheDB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open cache database at %q: %w", cli.CacheDB, err)
		}
		defer m.Close()
		cache = sqlite.NewPageCache(m.DB, lib.Name)
	} else {
		cache = fs.NewPageCache(filepath.Join(cli.Cache, lib.Name))
	}
	deps.Cache = stubslog.NewLoggingPageCache(cache, logger)

	deps.Processor = &crawl.Processor{
		Extractor: goquery.NewExtractor(),
		Emitter: &sigstub.Emitter{
			NoComments: cli.NoComments,
			Width:      cli.Width,
		},
		Concurrency: cli.Concurrency,
	}

	out := filepath.Clean(cli.Out)
	deps.Stubs = fs.NewStubStore(filepath.Dir(out), filepath.Base(out))

	cmd := &GenerateCmd{
		Library: lib,
		Refresh: cli.Refresh,
	}
	return cmd.Run(deps)
}
