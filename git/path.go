package git

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// absoluteFilePath joins a relative filePath onto projectPath. A relative
// projectPath is taken from the current directory.
func absoluteFilePath(projectPath, filePath string) string {
	p := filePath
	if !filepath.IsAbs(p) {
		p = filepath.Join(projectPath, filePath)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// stripWorkdir returns target relative to workdir. When the plain prefix
// does not match, both sides are retried with symlinks evaluated, so a
// file reached through a symlinked directory still maps into the repository.
func stripWorkdir(workdir, target string) (string, bool) {
	if rel, ok := relativeTo(workdir, target); ok {
		return rel, true
	}

	realWorkdir, err := filepath.EvalSymlinks(workdir)
	if err != nil {
		return "", false
	}
	realDir, err := filepath.EvalSymlinks(filepath.Dir(target))
	if err != nil {
		return "", false
	}
	return relativeTo(realWorkdir, filepath.Join(realDir, filepath.Base(target)))
}

func relativeTo(root, target string) (string, bool) {
	if root == "" {
		return "", false
	}
	rel, err := filepath.Rel(filepath.Clean(root), target)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// treePath converts a repository relative path into the slash separated
// form used for tree lookups. Paths that are empty, absolute, or climb out
// of the working directory are rejected.
func treePath(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("path is outside the working directory")
	}

	p := filepath.ToSlash(rel)
	if path.IsAbs(p) {
		return "", fmt.Errorf("path is outside the working directory")
	}

	p = path.Clean(p)
	switch {
	case p == ".":
		return "", fmt.Errorf("path names the working directory itself")
	case p == ".." || strings.HasPrefix(p, "../"):
		return "", fmt.Errorf("path escapes the working directory")
	}
	return p, nil
}
