// Package runner extracts warehouse features from many Markdown files at once.
package runner

// Options controls file discovery and concurrency for a run.
type Options struct {
	// Paths are files or directories to process. Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and glob patterns.
	// If empty, the process working directory is used.
	WorkingDir string

	// Extensions lists Markdown file extensions, lowercase with a leading dot.
	// Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restricts discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs bounds concurrent extractions. 0 or negative means runtime.NumCPU().
	Jobs int

	// MaxBytes caps each file read. 0 disables the cap.
	MaxBytes int64
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
