package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pgcreation/internal/checksum"
	"github.com/vvka-141/pgcreation/internal/collector"
	"github.com/vvka-141/pgcreation/internal/files/scanner"
	"github.com/vvka-141/pgcreation/internal/retry"
	"github.com/vvka-141/pgcreation/internal/tui"
	"github.com/vvka-141/pgcreation/pkg/creation"
)

const watchDebounce = 100 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Re-collect a directory whenever its SQL files change",
	Long: `Collects every SQL file under a directory, then keeps watching it. Each
time a SQL file is written, created, removed or renamed the directory is
collected again and a one-line summary, or the error, is printed.

Bursts of changes are coalesced. Press Ctrl+C to stop.

Examples:
  pgcreation watch ./schema
  pgcreation watch ./schema --exclude legacy`,
	Args:              RequireSourceDir,
	ValidArgsFunction: completeSourceDirs,
	RunE:              runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("failed to access %s: %w", args[0], err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", args[0])
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	logger := newLogger(cmd, cfg)
	w := &dirWatcher{
		root:      args[0],
		collector: collector.New(logger, collector.WithScanOptions(scanOptions(cfg))),
		filter:    scanner.NewScanner(checksum.New(), scanOptions(cfg)),
		logger:    logger,
		out:       out,
		styler:    stylerFor(out),
		debounce:  watchDebounce,
		retrier:   newVanishedFileRetrier(logger),
	}
	return w.Run(ctx)
}

// dirWatcher reports on a directory every time its SQL files settle.
type dirWatcher struct {
	root      string
	collector *collector.Collector
	filter    *scanner.Scanner
	logger    creation.Logger
	out       io.Writer
	styler    tui.Styler
	debounce  time.Duration
	retrier   *retry.Executor

	// lastScan fingerprints the files behind the last successful report;
	// it is only meaningful while haveScan is set.
	lastScan string
	haveScan bool
}

// newVanishedFileRetrier retries a collection that lost a file to a
// save-by-rename in progress.
func newVanishedFileRetrier(logger creation.Logger) *retry.Executor {
	return retry.NewExecutor(retry.NewVanishedFileClassifier(), retry.NewExponentialBackoff(3)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("retry %d in %v: %v", attempt+1, delay, err)
		})
}

// Run collects once, then again after every burst of relevant changes,
// until ctx is done.
func (w *dirWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchTree(watcher, w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}

	w.report(ctx)

	var settled <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						w.warn("failed to watch %s: %v", event.Name, err)
					}
				}
			}
			if !w.relevant(event) {
				continue
			}
			settled = time.After(w.debounce)

		case <-settled:
			settled = nil
			w.report(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.warn("watcher error: %v", err)
		}
	}
}

func (w *dirWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return false
	}
	return w.filter.Accepts(filepath.ToSlash(rel))
}

// report collects the directory and prints a summary line. Nothing is
// printed when no SQL file was added, removed or modified since the last
// report.
func (w *dirWatcher) report(ctx context.Context) {
	var (
		coll      *creation.Collection
		scan      string
		unchanged bool
	)
	err := w.retrier.Execute(ctx, func(ctx context.Context) error {
		files, err := w.collector.Scan(w.root)
		if err != nil {
			return err
		}
		scan = fingerprint(files)
		if unchanged = w.haveScan && scan == w.lastScan; unchanged {
			return nil
		}
		coll, err = w.collector.CollectFiles(ctx, w.root, files)
		return err
	})
	if ctx.Err() != nil {
		return
	}
	if err == nil && unchanged {
		w.logger.Verbose("no SQL changes under %s", w.root)
		return
	}

	stamp := w.styler.Muted(time.Now().Format("15:04:05"))
	if err != nil {
		w.haveScan = false
		_, _ = fmt.Fprintf(w.out, "%s %s %s\n", stamp, w.styler.Error(tui.SymbolCross), err)
		return
	}
	w.lastScan, w.haveScan = scan, true
	_, _ = fmt.Fprintf(w.out, "%s %s %s\n", stamp, w.styler.Success(tui.SymbolCheck), summarize(coll))
}

// fingerprint identifies a scan by its paths and content checksums.
func fingerprint(files []creation.FileMetadata) string {
	var b strings.Builder
	for _, f := range files {
		b.WriteString(f.Path)
		b.WriteByte(0)
		b.WriteString(f.Checksum)
		b.WriteByte('\n')
	}
	return b.String()
}

func (w *dirWatcher) warn(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w.out, "%s %s\n", w.styler.Error(tui.SymbolCross), fmt.Sprintf(format, args...))
}

// watchTree adds dir and every directory below it, skipping hidden ones.
func watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// summarize describes a collection as "N objects: 2 table, 1 view".
func summarize(coll *creation.Collection) string {
	counts := make(map[creation.Kind]int)
	for _, obj := range coll.Ordered() {
		counts[obj.Kind]++
	}

	var parts []string
	for k := creation.KindTable; k <= creation.KindAlter; k++ {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}

	summary := fmt.Sprintf("%d objects", coll.Len())
	if len(parts) > 0 {
		summary += ": " + strings.Join(parts, ", ")
	}
	return summary
}
