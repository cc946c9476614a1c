package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// Stdin is the input path that selects standard input
const Stdin = "-"

// ErrBinaryInput is returned when the input is recognized as a binary file format
var ErrBinaryInput = errors.New("input is not a text document")

// sniffLen is how much of the document filetype needs to recognize a format
const sniffLen = 262

// ReadFile reads the document at path, or standard input when path is "-"
func ReadFile(path string) (string, error) {
	if path == Stdin {
		return ReadStdin(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode returns data as a document, rejecting known binary formats. name is only used in errors.
func Decode(name string, data []byte) (string, error) {
	if err := checkText(data); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(data), nil
}

// IsStdinPiped checks if stdin is being piped to the program
func IsStdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// ReadStdin reads the whole document from r. Lines are kept verbatim so that
// line numbers match the piped content.
func ReadStdin(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("error reading from stdin: %w", err)
	}
	return Decode("stdin", data)
}

func checkText(data []byte) error {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return nil
	}
	return fmt.Errorf("%w (detected %s)", ErrBinaryInput, kind.MIME.Value)
}
