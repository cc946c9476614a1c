package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/multimediallc/dup-highlight/internal/config"
	"github.com/multimediallc/dup-highlight/internal/git"
	"github.com/multimediallc/dup-highlight/internal/render"
	"github.com/multimediallc/dup-highlight/internal/source"
	"github.com/multimediallc/dup-highlight/pkg/duplicates"
	f "github.com/multimediallc/dup-highlight/pkg/functional"
)

// OutputData summarizes one report run
type OutputData struct {
	File   string           `json:"file"`
	Output string           `json:"output"`
	Format string           `json:"format"`
	Stats  duplicates.Stats `json:"stats"`
}

// Config holds the application configuration.
// Empty OutputPath and Format fall back to the values of duphighlight.toml.
type Config struct {
	InputPath     string
	OutputPath    string
	Format        string
	ConfigDir     string
	Since         string
	Ref           string
	Verbose       bool
	Stdout        io.Writer
	InfoBuffer    io.Writer
	WarningBuffer io.Writer
}

// App represents the application with its dependencies
type App struct {
	Conf    *config.Config
	config  *Config
	newDiff func(git.DiffContext) (git.Diff, error)
	readRef func(ref string, dir string, path string) ([]byte, error)
}

// New creates a new App instance with the given configuration
func New(cfg Config) (*App, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("input path is required")
	}
	if cfg.InputPath == source.Stdin && (cfg.Since != "" || cfg.Ref != "") {
		return nil, errors.New("--since and --ref need a file path, not stdin")
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = "."
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.InfoBuffer == nil {
		cfg.InfoBuffer = io.Discard
	}
	if cfg.WarningBuffer == nil {
		cfg.WarningBuffer = io.Discard
	}
	return &App{
		config:  &cfg,
		newDiff: git.NewDiff,
		readRef: func(ref string, dir string, path string) ([]byte, error) {
			return git.NewGitRefFileReader(ref, dir).ReadFile(path)
		},
	}, nil
}

func (a *App) printDebug(format string, args ...interface{}) {
	if a.config.Verbose {
		_, _ = fmt.Fprintf(a.config.InfoBuffer, format, args...)
	}
}

func (a *App) printWarn(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.config.WarningBuffer, format, args...)
}

// Run executes the application logic
func (a *App) Run() (*OutputData, error) {
	conf, err := config.ReadConfig(a.config.ConfigDir)
	if err != nil {
		a.printWarn("Error reading %s - using default config\n", config.FileName)
	}
	a.Conf = conf

	outputPath := a.config.OutputPath
	if outputPath == "" {
		outputPath = conf.Output
	}
	formatName := a.config.Format
	if formatName == "" {
		formatName = conf.Format
	}
	format, err := render.ValidateFormat(formatName)
	if err != nil {
		return &OutputData{}, err
	}

	text, err := a.readInput()
	if err != nil {
		return &OutputData{}, err
	}

	lines := duplicates.SplitLines(text)
	groups := duplicates.FindGroups(lines)
	a.printDebug("Found %d duplicate groups in %d lines\n", len(groups), len(lines))

	if a.config.Since != "" {
		groups, err = a.restrictToChanges(groups)
		if err != nil {
			return &OutputData{}, err
		}
	}

	doc := render.NewDocumentFromGroups(a.config.InputPath, text, lines, groups)
	if err := a.writeReport(outputPath, format, doc); err != nil {
		return &OutputData{}, err
	}
	a.printDebug("Wrote %s report to %s\n", format, outputPath)

	return &OutputData{
		File:   a.config.InputPath,
		Output: outputPath,
		Format: string(format),
		Stats:  doc.Stats,
	}, nil
}

func (a *App) readInput() (string, error) {
	if a.config.Ref == "" {
		return source.ReadFile(a.config.InputPath)
	}
	dir, file := filepath.Split(a.config.InputPath)
	if dir == "" {
		dir = "."
	}
	a.printDebug("Reading %s at %s\n", a.config.InputPath, a.config.Ref)
	data, err := a.readRef(a.config.Ref, dir, file)
	if err != nil {
		return "", err
	}
	return source.Decode(a.config.InputPath+"@"+a.config.Ref, data)
}

// restrictToChanges keeps the groups touching lines changed since the configured ref
func (a *App) restrictToChanges(groups []duplicates.Group) ([]duplicates.Group, error) {
	dir, file := filepath.Split(a.config.InputPath)
	if dir == "" {
		dir = "."
	}
	diffContext := git.DiffContext{
		Base:   a.config.Since,
		Dir:    dir,
		Paths:  []string{file},
		Ignore: a.Conf.Ignore,
	}
	a.printDebug("Getting diff for %s against %s\n", a.config.InputPath, diffContext.Base)
	gitDiff, err := a.newDiff(diffContext)
	if err != nil {
		return nil, fmt.Errorf("NewDiff Error: %w", err)
	}
	changed := f.Map(gitDiff.ChangesFor(file), toLineRange)
	a.printDebug("Changed ranges: %+v\n", changed)

	restricted := duplicates.Restrict(groups, changed)
	if dropped := len(groups) - len(restricted); dropped > 0 {
		a.printDebug("Dropped %d groups outside the change set\n", dropped)
	}
	return restricted, nil
}

// toLineRange converts a 1-based hunk into 0-based physical line indices
func toLineRange(h git.HunkRange) duplicates.Range {
	return duplicates.Range{Start: h.Start - 1, End: h.End - 1}
}

func (a *App) writeReport(outputPath string, format render.Format, doc render.Document) error {
	if outputPath == "-" {
		return render.Write(a.config.Stdout, format, doc)
	}
	file, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output %s: %w", outputPath, err)
	}
	if err := render.Write(file, format, doc); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write output %s: %w", outputPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output %s: %w", outputPath, err)
	}
	return nil
}
