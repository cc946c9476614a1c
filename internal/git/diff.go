package git

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sourcegraph/go-diff/diff"
)

// HunkRange is the span of new-file lines touched by one hunk.
// Start and End are 1-based and inclusive.
type HunkRange struct {
	Start int
	End   int
}

type DiffFile struct {
	FileName string
	Hunks    []HunkRange
}

type Diff interface {
	ChangesFor(fileName string) []HunkRange
}

type GitDiff struct {
	files []DiffFile
}

// DiffContext selects what to compare: the working tree of Dir against Base,
// limited to Paths (relative to Dir) when given.
type DiffContext struct {
	Base   string
	Dir    string
	Paths  []string
	Ignore []string
}

func NewDiff(context DiffContext) (Diff, error) {
	return NewDiffWithExecutor(context, newRealGitExecutor(context.Dir))
}

func NewDiffWithExecutor(context DiffContext, executor gitCommandExecutor) (Diff, error) {
	gitDiff, err := getGitDiff(context, executor)
	if err != nil {
		return nil, err
	}
	diffFiles, err := toDiffFiles(gitDiff)
	if err != nil {
		return nil, err
	}

	return &GitDiff{files: diffFiles}, nil
}

// ChangesFor returns the hunks of one file, or nil when the file is unchanged
func (gd *GitDiff) ChangesFor(fileName string) []HunkRange {
	for _, file := range gd.files {
		if file.FileName == fileName {
			return file.Hunks
		}
	}
	return nil
}

// Parse the diff output to get the file names and hunks
func toDiffFiles(fileDiffs []*diff.FileDiff) ([]DiffFile, error) {
	diffFiles := make([]DiffFile, 0, len(fileDiffs))

	for _, d := range fileDiffs {
		if deletedFile(d) {
			continue
		}
		newDiffFile := DiffFile{
			FileName: stripPrefix(d.NewName),
			Hunks:    make([]HunkRange, 0, len(d.Hunks)),
		}
		for _, hunk := range d.Hunks {
			// pure deletions leave no new-file lines behind
			if hunk.NewLines == 0 {
				continue
			}
			newHunkRange := HunkRange{
				Start: int(hunk.NewStartLine),
				End:   int(hunk.NewStartLine + hunk.NewLines - 1),
			}
			newDiffFile.Hunks = append(newDiffFile.Hunks, newHunkRange)
		}
		diffFiles = append(diffFiles, newDiffFile)
	}
	return diffFiles, nil
}

func deletedFile(d *diff.FileDiff) bool {
	return d.NewName == "/dev/null"
}

func stripPrefix(name string) string {
	return strings.TrimPrefix(name, "b/")
}

func getGitDiff(data DiffContext, executor gitCommandExecutor) ([]*diff.FileDiff, error) {
	if data.Base == "" {
		return nil, fmt.Errorf("diff base ref is required")
	}
	args := []string{"diff", "--relative", "--no-color", "-U0", data.Base}
	if len(data.Paths) > 0 {
		args = append(args, "--")
		args = append(args, data.Paths...)
	}
	cmdOutput, err := executor.execute("git", args...)
	if err != nil {
		return nil, fmt.Errorf("Diff Error: %w", err)
	}
	gitDiff, err := diff.ParseMultiFileDiff(cmdOutput)
	if err != nil {
		return nil, err
	}
	gitDiff = slices.DeleteFunc(gitDiff, func(d *diff.FileDiff) bool {
		return ignored(stripPrefix(d.NewName), data.Ignore)
	})
	return gitDiff, nil
}

func ignored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if match, err := doublestar.Match(pattern, path); err == nil && match {
			return true
		}
	}
	return false
}
