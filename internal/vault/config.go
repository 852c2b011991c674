package vault

import "github.com/charmbracelet/log"

// Config describes index behavior.
type Config struct {
	// IgnoredFolders contains directory names that should be skipped when
	// indexing. Paths containing any of these folders will not be indexed.
	IgnoredFolders []string
	// Logger receives warnings about notes that could not be fully parsed.
	// A nil Logger discards them.
	Logger *log.Logger
}
