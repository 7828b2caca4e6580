package domain

import "path/filepath"

const (
	// MatchviewDirName is the name of the local state directory.
	MatchviewDirName = ".matchview"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// ResultsDirName is the name of the result payload store.
	ResultsDirName = "results"

	// DiagramsDirName is the name of the diagram artifact store.
	DiagramsDirName = "diagrams"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "matchview.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default cache root.
// It joins .matchview and cache.
func DefaultCachePath() string {
	return filepath.Join(MatchviewDirName, CacheDirName)
}

// ResultsPath returns the result store directory below a cache root.
func ResultsPath(cacheRoot string) string {
	return filepath.Join(cacheRoot, ResultsDirName)
}

// DiagramsPath returns the diagram store directory below a cache root.
func DiagramsPath(cacheRoot string) string {
	return filepath.Join(cacheRoot, DiagramsDirName)
}
