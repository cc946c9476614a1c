package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/multimediallc/dup-highlight/pkg/duplicates"
)

//go:embed report.html.tmpl
var reportTmpl string

// ReportTmpl renders a Document as HTML. Line text is escaped by html/template.
var ReportTmpl = template.Must(template.New("report.html").Parse(reportTmpl))

const plainText = "plaintext"

// Document is everything a renderer needs for one analyzed file
type Document struct {
	File     string                     `json:"file"`
	Language string                     `json:"language"`
	Stats    duplicates.Stats           `json:"stats"`
	Groups   []duplicates.Group         `json:"groups"`
	Lines    []duplicates.AnnotatedLine `json:"lines"`
}

// NewDocument runs detection over text and collects the result for rendering
func NewDocument(file string, text string) Document {
	lines := duplicates.SplitLines(text)
	return NewDocumentFromGroups(file, text, lines, duplicates.FindGroups(lines))
}

// NewDocumentFromGroups builds a Document from groups computed by the caller
func NewDocumentFromGroups(file string, text string, lines []duplicates.Line, groups []duplicates.Group) Document {
	annotated := duplicates.Annotate(lines, groups)
	return Document{
		File:     file,
		Language: DetectLanguage(file, text),
		Stats:    duplicates.Summarize(annotated, groups),
		Groups:   groups,
		Lines:    annotated,
	}
}

// DetectLanguage returns a lowercase language class for the code element.
// The file name is tried first, then the content; "plaintext" when neither is recognized.
func DetectLanguage(file string, text string) string {
	lexer := lexers.Match(file)
	if lexer == nil && strings.TrimSpace(text) != "" {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		return plainText
	}
	config := lexer.Config()
	if len(config.Aliases) > 0 {
		return strings.ToLower(config.Aliases[0])
	}
	if config.Name != "" {
		return strings.ToLower(strings.ReplaceAll(config.Name, " ", "-"))
	}
	return plainText
}

// Write renders doc in the given format
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatHTML:
		return HTML(w, doc)
	case FormatText:
		return Text(w, doc)
	case FormatJSON:
		return JSON(w, doc)
	}
	return fmt.Errorf("unsupported format: %s", format)
}

// HTML writes the standalone report page with duplicated lines wrapped in hl spans
func HTML(w io.Writer, doc Document) error {
	if err := ReportTmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("failed to render html report: %w", err)
	}
	return nil
}

// Text writes one line per physical line, prefixed with "> " when highlighted
func Text(w io.Writer, doc Document) error {
	for _, l := range doc.Lines {
		marker := "  "
		if l.Highlight {
			marker = "> "
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", marker, l.Text); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes doc as indented JSON. Groups is always an array.
func JSON(w io.Writer, doc Document) error {
	if doc.Groups == nil {
		doc.Groups = []duplicates.Group{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
