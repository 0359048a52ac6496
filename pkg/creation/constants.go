package creation

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // All statements classified
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid pgcreation.yaml or environment override
	ExitMalformedComment = 20 // "*/" without a matching "/*"
	ExitUnclassifiable   = 21 // Statement matched no known kind
)

const (
	// MaxErrorPreviewLength is the maximum number of characters of a
	// statement shown in human-readable diagnostics.
	MaxErrorPreviewLength = 200

	// ConfigFileName is the optional per-project configuration file.
	ConfigFileName = "pgcreation.yaml"
)

// DefaultSQLExtensions are the file extensions collected from a directory
// when no configuration overrides them.
var DefaultSQLExtensions = []string{".sql", ".ddl", ".dml", ".psql", ".pgsql", ".plpgsql"}
