package creation

// FileScanner discovers SQL source files under a directory.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// ScanDirectory recursively scans a directory and returns file metadata
	// sorted by Path.
	ScanDirectory(sourcePath string) (FileScanResult, error)
}

// FileScanResult contains the results of scanning a directory.
type FileScanResult struct {
	Files []FileMetadata
}

// FileMetadata describes one SQL source file found by a FileScanner.
type FileMetadata struct {
	// Path is relative to the scan root, with forward slashes: "./schema/001_users.sql".
	Path string

	// Content is the full unmodified file content.
	Content string

	// Checksum is the SHA-256 of Content.
	Checksum string
}
