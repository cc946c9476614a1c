package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrNotInRef = errors.New("path does not exist at ref")

// GitRefFileReader reads files from a specific git ref
type GitRefFileReader struct {
	ref      string
	dir      string
	executor gitCommandExecutor
}

// NewGitRefFileReader creates a new GitRefFileReader for reading files from a git ref
func NewGitRefFileReader(ref string, dir string) *GitRefFileReader {
	return &GitRefFileReader{
		ref:      ref,
		dir:      dir,
		executor: newRealGitExecutor(dir),
	}
}

// ReadFile reads a file from the git ref. path is relative to the reader's directory.
func (r *GitRefFileReader) ReadFile(path string) ([]byte, error) {
	if !r.PathExists(path) {
		return nil, fmt.Errorf("%s: %w %s", path, ErrNotInRef, r.ref)
	}
	path = r.normalizePathForGit(path)

	// "./" keeps the path relative to dir rather than the repository root
	output, err := r.executor.execute("git", "show", fmt.Sprintf("%s:./%s", r.ref, path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s from ref %s: %w", path, r.ref, err)
	}
	return output, nil
}

// PathExists checks if a file exists in the git ref
func (r *GitRefFileReader) PathExists(path string) bool {
	path = r.normalizePathForGit(path)

	_, err := r.executor.execute("git", "cat-file", "-e", fmt.Sprintf("%s:./%s", r.ref, path))
	return err == nil
}

// normalizePathForGit makes absolute paths under dir relative to it
func (r *GitRefFileReader) normalizePathForGit(path string) string {
	if filepath.IsAbs(path) && filepath.IsAbs(r.dir) {
		if rel, err := filepath.Rel(r.dir, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	path = filepath.ToSlash(filepath.Clean(path))
	path = strings.TrimPrefix(path, "./")
	return strings.TrimPrefix(path, "/")
}
