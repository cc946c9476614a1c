package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/multimediallc/dup-highlight/internal/app"
	"github.com/multimediallc/dup-highlight/internal/source"
	"github.com/urfave/cli/v2"
)

var (
	WarningBuffer = bytes.NewBuffer([]byte{})
	InfoBuffer    = bytes.NewBuffer([]byte{})
)

func flushBuffers(verbose bool) {
	_, err := WarningBuffer.WriteTo(os.Stderr)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error writing warning buffer: %v\n", err)
	}
	if verbose {
		_, err := InfoBuffer.WriteTo(os.Stderr)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error writing info buffer: %v\n", err)
		}
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "dup-highlight",
		Usage:     "Highlighter of duplicate code lines",
		Version:   "v1.0.0",
		ArgsUsage: "INPUT",
		Description: "Finds repeated blocks of lines in INPUT and writes a report with every duplicated line highlighted. " +
			"Use - as INPUT to read from stdin.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report destination, - for stdout (default from duphighlight.toml, else /tmp/dup-report.html)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format.  Allowed values are: html, text, and json",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   ".",
				Usage:   "Directory containing duphighlight.toml",
			},
			&cli.StringFlag{
				Name:  "since",
				Usage: "Only report duplicates touching lines changed since this git ref",
			},
			&cli.StringFlag{
				Name:  "ref",
				Usage: "Analyze INPUT as it is at this git ref instead of the working tree",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Verbose output",
			},
		},
		Action: run,
	}
}

func run(cCtx *cli.Context) error {
	if cCtx.NArg() != 1 {
		return fmt.Errorf("exactly one INPUT path is required")
	}
	input := cCtx.Args().First()
	if input == source.Stdin && !source.IsStdinPiped() {
		return fmt.Errorf("INPUT is - but nothing is piped to stdin")
	}

	a, err := app.New(app.Config{
		InputPath:     input,
		OutputPath:    cCtx.String("output"),
		Format:        cCtx.String("format"),
		ConfigDir:     cCtx.String("config"),
		Since:         cCtx.String("since"),
		Ref:           cCtx.String("ref"),
		Verbose:       cCtx.Bool("verbose"),
		Stdout:        os.Stdout,
		InfoBuffer:    InfoBuffer,
		WarningBuffer: WarningBuffer,
	})
	if err != nil {
		return err
	}

	outputData, err := a.Run()
	flushBuffers(cCtx.Bool("verbose"))
	if err != nil {
		return err
	}
	if outputData.Output != "-" {
		fmt.Printf("%d duplicate groups, %d lines highlighted: %s\n",
			outputData.Stats.Groups, outputData.Stats.HighlightedLines, outputData.Output)
	}
	return nil
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
