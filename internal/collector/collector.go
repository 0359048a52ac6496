// Package collector reads SQL files and turns them into name-indexed
// collections of classified objects.
package collector

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/pgcreation/internal/checksum"
	"github.com/vvka-141/pgcreation/internal/files/filesystem"
	"github.com/vvka-141/pgcreation/internal/files/scanner"
	"github.com/vvka-141/pgcreation/internal/logging"
	"github.com/vvka-141/pgcreation/internal/objects"
	"github.com/vvka-141/pgcreation/internal/preprocessor"
	"github.com/vvka-141/pgcreation/pkg/creation"
)

// Collector runs the strip, tokenize and classify pipeline over files.
// A Collector holds no per-call state and is safe for concurrent use.
type Collector struct {
	logger      creation.Logger
	fs          filesystem.FileSystemProvider
	scanOpts    scanner.Options
	scanner     creation.FileScanner
	pipeline    *preprocessor.Pipeline
	concurrency int
}

// Option configures a Collector.
type Option func(*Collector)

// WithFileSystem reads sources through fs instead of the OS filesystem.
func WithFileSystem(fs filesystem.FileSystemProvider) Option {
	return func(c *Collector) { c.fs = fs }
}

// WithScanOptions sets the extension filter and exclude globs used by
// CollectDirectory.
func WithScanOptions(opts scanner.Options) Option {
	return func(c *Collector) { c.scanOpts = opts }
}

// WithConcurrency bounds how many files CollectDirectory processes at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// New creates a Collector. A nil logger discards output.
func New(logger creation.Logger, opts ...Option) *Collector {
	c := &Collector{
		logger:      logger,
		fs:          filesystem.NewOSFileSystem(),
		pipeline:    preprocessor.NewPipeline(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNullLogger()
	}
	c.scanner = scanner.NewScannerWithFS(checksum.New(), c.fs, c.scanOpts)
	return c
}

// Statements reads path and returns its raw statements without classifying them.
func (c *Collector) Statements(path string) ([]string, error) {
	content, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	statements, err := c.pipeline.Process(string(content))
	if err != nil {
		return nil, withFile(err, path)
	}
	return statements, nil
}

// CollectFile reads one SQL file and classifies every statement in it.
//
// Objects are added in file order; a later statement declaring an existing
// name replaces the earlier object. A malformed comment or an unclassifiable
// statement aborts the file and no collection is returned.
func (c *Collector) CollectFile(path string) (*creation.Collection, error) {
	content, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return c.collect(path, string(content))
}

// CollectDirectory collects every SQL file under root.
func (c *Collector) CollectDirectory(ctx context.Context, root string) (*creation.Collection, error) {
	files, err := c.Scan(root)
	if err != nil {
		return nil, err
	}
	return c.CollectFiles(ctx, root, files)
}

// Scan lists the SQL files under root that CollectDirectory would
// collect, sorted by path, with their content and checksums.
func (c *Collector) Scan(root string) ([]creation.FileMetadata, error) {
	result, err := c.scanner.ScanDirectory(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return result.Files, nil
}

// CollectFiles collects files previously returned by Scan for root.
//
// Files are processed concurrently but merged in sorted path order, so a
// name defined in several files resolves to the definition in the last
// file. If any file fails, the error of the first failing file in path
// order is returned.
func (c *Collector) CollectFiles(ctx context.Context, root string, files []creation.FileMetadata) (*creation.Collection, error) {
	c.logger.Verbose("Found %d SQL files under %s", len(files), root)

	parts := make([]*creation.Collection, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(files[i].Path, "./")))
			parts[i], errs[i] = c.collect(name, files[i].Content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := creation.NewCollection()
	for i, part := range parts {
		if errs[i] != nil {
			return nil, errs[i]
		}
		for _, obj := range part.Ordered() {
			if prev := merged.Add(obj); prev != nil {
				c.logger.Verbose("%s %q from %s replaces definition from %s", obj.Kind, obj.Name, obj.Filename, prev.Filename)
			}
		}
	}
	return merged, nil
}

// CollectPath collects a single file or a whole directory, depending on
// what path names.
func (c *Collector) CollectPath(ctx context.Context, path string) (*creation.Collection, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.IsDir() {
		return c.CollectDirectory(ctx, path)
	}
	return c.CollectFile(path)
}

func (c *Collector) collect(filename, content string) (*creation.Collection, error) {
	statements, err := c.pipeline.Process(content)
	if err != nil {
		return nil, withFile(err, filename)
	}

	coll := creation.NewCollection()
	for _, stmt := range statements {
		obj, err := objects.Classify(stmt)
		if err != nil {
			return nil, withFile(err, filename)
		}
		obj.Filename = filename

		if prev := coll.Add(obj); prev != nil {
			c.logger.Verbose("%s: %s %q redefined", filename, obj.Kind, obj.Name)
		}
	}

	c.logger.Verbose("%s: %d statements, %d objects", filename, len(statements), coll.Len())
	return coll, nil
}

// withFile records filename on the typed pipeline errors.
func withFile(err error, filename string) error {
	var mce *creation.MalformedCommentError
	if errors.As(err, &mce) {
		mce.File = filename
		return err
	}
	var uce *creation.UnclassifiableStatementError
	if errors.As(err, &uce) {
		uce.File = filename
		return err
	}
	return fmt.Errorf("%s: %w", filename, err)
}
