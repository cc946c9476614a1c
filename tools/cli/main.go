package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/boyter/gocodewalker"
	"github.com/multimediallc/dup-highlight/internal/config"
	"github.com/multimediallc/dup-highlight/internal/source"
	"github.com/multimediallc/dup-highlight/pkg/duplicates"
	f "github.com/multimediallc/dup-highlight/pkg/functional"
	"github.com/urfave/cli/v2"
)

func stripRoot(root string, path string) string {
	if root == "." {
		return path
	}
	return strings.TrimPrefix(path, strings.TrimSuffix(root, "/")+"/")
}

func main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print version",
	}
	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Println(cCtx.App.Version)
	}
	err := newApp(os.Stdout, os.Stderr).Run(os.Args)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(stdout io.Writer, stderr io.Writer) *cli.App {
	var root string
	return &cli.App{
		Name:        "dup-highlight-cli",
		Usage:       "CLI tool for listing duplicated blocks of lines",
		Version:     "v1.0.0",
		Description: "",
		Writer:      stdout,
		ErrWriter:   stderr,
		Commands: []*cli.Command{
			{
				Name:        "groups",
				Aliases:     []string{"g"},
				Usage:       "List the duplicate groups of one or more files",
				UsageText:   "dup-highlight-cli groups [options] <file1> [file2] [file3]...",
				Description: "Each file is analyzed on its own. Use - to read a single document from stdin.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "default",
						Usage:   "Output format.  Allowed values are: default, one-line, and json",
					},
				},
				Action: func(cCtx *cli.Context) error {
					targets := cCtx.Args().Slice()
					if len(targets) == 0 {
						return fmt.Errorf("at least one target file is required")
					}
					format, err := validateFormat(cCtx.String("format"))
					if err != nil {
						return err
					}
					return fileGroups(stdout, targets, format)
				},
			},
			{
				Name:        "scan",
				Aliases:     []string{"s"},
				Usage:       "Find files containing duplicated blocks",
				UsageText:   "dup-highlight-cli scan [options] [target-dir]",
				Description: "Walk the directory tree, respecting .gitignore and the ignore patterns of duphighlight.toml, and report every file with duplicates. Files are never compared with each other.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "root",
						Aliases:     []string{"r"},
						Value:       ".",
						Usage:       "Directory to scan; its duphighlight.toml is used",
						Destination: &root,
					},
					&cli.IntFlag{
						Name:  "min-groups",
						Value: 0,
						Usage: "Only list files with at least this many groups (default from duphighlight.toml)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "default",
						Usage:   "Output format.  Allowed values are: default, one-line, and json",
					},
				},
				Action: func(cCtx *cli.Context) error {
					target := ""
					if cCtx.NArg() > 0 {
						target = cCtx.Args().First()
					}
					format, err := validateFormat(cCtx.String("format"))
					if err != nil {
						return err
					}
					return scanFiles(stdout, stderr, root, target, cCtx.Int("min-groups"), format)
				},
			},
		},
	}
}

// FileReport is the listing of one analyzed file. Line numbers are 1-based.
type FileReport struct {
	File   string        `json:"file"`
	Lines  int           `json:"lines"`
	Groups []GroupReport `json:"groups"`
}

type GroupReport struct {
	Length      int         `json:"length"`
	Occurrences []LineRange `json:"occurrences"`
}

type LineRange struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

func (lr LineRange) String() string {
	if lr.StartLine == lr.EndLine {
		return fmt.Sprintf("%d", lr.StartLine)
	}
	return fmt.Sprintf("%d-%d", lr.StartLine, lr.EndLine)
}

func newFileReport(file string, text string) FileReport {
	lines := duplicates.SplitLines(text)
	groups := duplicates.FindGroups(lines)
	nonEmpty := duplicates.NonEmpty(lines)
	return FileReport{
		File:  file,
		Lines: len(lines),
		Groups: f.Map(groups, func(g duplicates.Group) GroupReport {
			return GroupReport{
				Length: blockLength(nonEmpty, g[0]),
				Occurrences: f.Map(g, func(r duplicates.Range) LineRange {
					return LineRange{StartLine: r.Start + 1, EndLine: r.End + 1}
				}),
			}
		}),
	}
}

// blockLength counts the non-empty lines of one occurrence
func blockLength(nonEmpty []duplicates.Line, r duplicates.Range) int {
	return len(f.Filtered(nonEmpty, func(l duplicates.Line) bool { return r.Contains(l.Index) }))
}

func fileGroups(w io.Writer, targets []string, format OutputFormat) error {
	if slices.Contains(targets, source.Stdin) && len(targets) > 1 {
		return fmt.Errorf("stdin (-) cannot be combined with other files")
	}
	reports := make([]FileReport, 0, len(targets))
	for _, target := range targets {
		if target == "" {
			return fmt.Errorf("empty target file path is not allowed")
		}
		text, err := source.ReadFile(target)
		if err != nil {
			return err
		}
		reports = append(reports, newFileReport(target, text))
	}
	return printReports(w, reports, format, true)
}

func printReports(w io.Writer, reports []FileReport, format OutputFormat, withEmpty bool) error {
	switch format {
	case FormatJSON:
		jsonString, err := json.Marshal(reports)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(jsonString))
		return err
	case FormatOneLine:
		for _, report := range reports {
			if len(report.Groups) == 0 && !withEmpty {
				continue
			}
			groups := f.Map(report.Groups, func(g GroupReport) string {
				return strings.Join(f.Map(g.Occurrences, LineRange.String), ",")
			})
			_, _ = fmt.Fprintf(w, "%s: %s\n", report.File, strings.Join(groups, "; "))
		}
	default:
		first := true
		for _, report := range reports {
			if len(report.Groups) == 0 && !withEmpty {
				continue
			}
			if !first {
				_, _ = fmt.Fprintln(w)
			}
			first = false
			_, _ = fmt.Fprintf(w, "%s: %d duplicate groups\n", report.File, len(report.Groups))
			for _, g := range report.Groups {
				occurrences := f.Map(g.Occurrences, func(lr LineRange) string { return "lines " + lr.String() })
				_, _ = fmt.Fprintf(w, "- %d lines x%d: %s\n", g.Length, len(g.Occurrences), strings.Join(occurrences, ", "))
			}
		}
	}
	return nil
}

// allowedExtensions lowercases and dedupes extensions, dropping any leading dot
func allowedExtensions(extensions []string) []string {
	allowed := f.NewSet[string]()
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext != "" {
			allowed.Add(ext)
		}
	}
	return slices.Sorted(slices.Values(allowed.Items()))
}

func ignoredPath(path string, patterns []string) bool {
	return f.Any(patterns, func(pattern string) bool {
		match, err := doublestar.Match(pattern, path)
		return err == nil && match
	})
}

func scanFiles(w io.Writer, warn io.Writer, root string, target string, minGroups int, format OutputFormat) error {
	if rootStat, err := os.Lstat(root); err != nil || !rootStat.IsDir() {
		return fmt.Errorf("root is not a directory: %s", root)
	}
	conf, err := config.ReadConfig(root)
	if err != nil {
		_, _ = fmt.Fprintf(warn, "WARNING: Error reading %s - using default config\n", config.FileName)
	}
	if minGroups <= 0 {
		minGroups = conf.Scan.MinGroups
	}

	fileListQueue := make(chan *gocodewalker.File, 100)

	walker := gocodewalker.NewFileWalker(root, fileListQueue)
	walker.IncludeHidden = conf.Scan.IncludeHidden
	walker.ExcludeDirectory = []string{".git"}
	walker.AllowListExtensions = allowedExtensions(conf.Scan.Extensions)

	errChan := make(chan error)

	go func() {
		err := walker.Start()
		errChan <- err
		close(errChan)
	}()

	reports := make([]FileReport, 0)
	for file := range fileListQueue {
		path := stripRoot(root, file.Location)
		if target != "" && !strings.HasPrefix(path, target) {
			continue
		}
		if ignoredPath(path, conf.Ignore) {
			continue
		}
		text, err := source.ReadFile(file.Location)
		if errors.Is(err, source.ErrBinaryInput) {
			_, _ = fmt.Fprintf(warn, "WARNING: Skipping binary file: %s\n", path)
			continue
		}
		if err != nil {
			_, _ = fmt.Fprintf(warn, "WARNING: %s\n", err)
			continue
		}
		report := newFileReport(path, text)
		if len(report.Groups) >= minGroups {
			reports = append(reports, report)
		}
	}

	if err := <-errChan; err != nil {
		return fmt.Errorf("error walking directory: %s", err)
	}

	slices.SortFunc(reports, func(a, b FileReport) int { return strings.Compare(a.File, b.File) })
	if err := printReports(w, reports, format, false); err != nil {
		return err
	}
	if format != FormatJSON {
		total := f.Sum(reports, func(r FileReport) int { return len(r.Groups) })
		_, _ = fmt.Fprintf(warn, "%d duplicate groups in %d files\n", total, len(reports))
	}
	return nil
}
