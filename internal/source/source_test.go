package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "main.go")
	if err := os.WriteFile(textPath, []byte("a\n\n  b\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pngPath := filepath.Join(dir, "image.png")
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}
	if err := os.WriteFile(pngPath, png, 0o644); err != nil {
		t.Fatal(err)
	}
	emptyPath := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(emptyPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tt := []struct {
		name      string
		path      string
		expected  string
		expectErr bool
		binary    bool
	}{
		{name: "text file is returned verbatim", path: textPath, expected: "a\n\n  b\r\n"},
		{name: "empty file", path: emptyPath, expected: ""},
		{name: "missing file", path: filepath.Join(dir, "nope.go"), expectErr: true},
		{name: "directory", path: dir, expectErr: true},
		{name: "binary file", path: pngPath, expectErr: true, binary: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadFile(tc.path)
			if tc.expectErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if errors.Is(err, ErrBinaryInput) != tc.binary {
					t.Errorf("errors.Is(err, ErrBinaryInput) = %v, expected %v (err: %v)", !tc.binary, tc.binary, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("ReadFile() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestReadStdin(t *testing.T) {
	input := "  line1  \n\n\tline2\t\n"
	got, err := ReadStdin(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("ReadStdin() = %q, expected input unchanged", got)
	}
}

func TestIsStdinPiped(t *testing.T) {
	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	defer func() {
		_ = r.Close()
		_ = w.Close()
	}()
	os.Stdin = r

	if !IsStdinPiped() {
		t.Error("IsStdinPiped() returned false for a pipe")
	}
}
