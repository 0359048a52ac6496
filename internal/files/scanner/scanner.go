package scanner

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/vvka-141/pgcreation/internal/checksum"
	"github.com/vvka-141/pgcreation/internal/files/filesystem"
	"github.com/vvka-141/pgcreation/pkg/creation"
)

// Options select which files a Scanner reports.
type Options struct {
	// Extensions lists accepted file extensions, compared case-insensitively.
	// Empty means creation.DefaultSQLExtensions.
	Extensions []string

	// Exclude holds glob patterns matched against the slash-separated path
	// relative to the scan root, and against the base name. A matching
	// directory excludes its whole subtree.
	Exclude []string
}

// Scanner discovers SQL files in a directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
	extensions map[string]bool
	exclude    []string
}

// NewScanner creates a new file scanner over the OS filesystem.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator, opts Options) *Scanner {
	return NewScannerWithFS(calculator, filesystem.NewOSFileSystem(), opts)
}

// NewScannerWithFS creates a new file scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider, opts Options) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = creation.DefaultSQLExtensions
	}
	extensions := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = true
	}

	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
		extensions: extensions,
		exclude:    opts.Exclude,
	}
}

// ScanDirectory recursively scans sourcePath and returns metadata for every
// SQL file, sorted by path.
func (s *Scanner) ScanDirectory(sourcePath string) (creation.FileScanResult, error) {
	dir, err := s.fsProvider.Open(sourcePath)
	if err != nil {
		return creation.FileScanResult{}, fmt.Errorf("failed to open directory: %w", err)
	}

	var files []creation.FileMetadata

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		relPath := file.RelativePath()
		if relPath == "." {
			return nil
		}
		// Subtrees of excluded directories are still walked but every
		// file under them matches by prefix.
		if s.excluded(relPath) || file.Info().IsDir() {
			return nil
		}
		if !s.extensions[strings.ToLower(path.Ext(relPath))] {
			return nil
		}

		meta, err := s.processFile(file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", relPath, err)
		}
		files = append(files, meta)
		return nil
	})
	if err != nil {
		return creation.FileScanResult{}, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return creation.FileScanResult{Files: files}, nil
}

// Accepts reports whether a file at relPath, slash-separated and relative
// to the scan root, would be part of a scan result.
func (s *Scanner) Accepts(relPath string) bool {
	relPath = strings.TrimPrefix(path.Clean(relPath), "./")
	if relPath == "." || s.excluded(relPath) {
		return false
	}
	return s.extensions[strings.ToLower(path.Ext(relPath))]
}

// excluded reports whether relPath or any of its parent directories
// matches an exclude pattern.
func (s *Scanner) excluded(relPath string) bool {
	for p := relPath; p != "." && p != "/" && p != ""; p = path.Dir(p) {
		for _, pattern := range s.exclude {
			if matchGlob(pattern, p) {
				return true
			}
		}
	}
	return false
}

// matchGlob matches a slash-separated path against pattern, trying the
// full relative path first and then the base name.
func matchGlob(pattern, p string) bool {
	pattern = strings.TrimPrefix(pattern, "./")
	if matched, _ := path.Match(pattern, p); matched {
		return true
	}
	matched, _ := path.Match(pattern, path.Base(p))
	return matched
}

func (s *Scanner) processFile(file filesystem.File) (creation.FileMetadata, error) {
	content, err := file.ReadContent()
	if err != nil {
		return creation.FileMetadata{}, fmt.Errorf("failed to read file: %w", err)
	}

	unixPath := file.RelativePath()
	if !strings.HasPrefix(unixPath, "./") {
		unixPath = "./" + unixPath
	}

	return creation.FileMetadata{
		Path:     unixPath,
		Content:  string(content),
		Checksum: s.calculator.Calculate(content),
	}, nil
}

// Verify Scanner implements the interface at compile time
var _ creation.FileScanner = (*Scanner)(nil)
