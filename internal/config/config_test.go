package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadConfig(t *testing.T) {
	tt := []struct {
		name          string
		configContent string
		noFile        bool
		expected      *Config
		expectedErr   bool
	}{
		{
			name:   "default config when no file exists",
			noFile: true,
			expected: &Config{
				Output: DefaultOutput,
				Format: "html",
				Ignore: []string{},
				Scan:   Scan{Extensions: []string{}, MinGroups: 1},
			},
		},
		{
			name: "valid config with all fields",
			configContent: `
output = "report.html"
format = "json"
ignore = ["vendor/**", "**/*.min.js"]
[scan]
include_hidden = true
extensions = ["go", "rs"]
min_groups = 3
`,
			expected: &Config{
				Output: "report.html",
				Format: "json",
				Ignore: []string{"vendor/**", "**/*.min.js"},
				Scan:   Scan{IncludeHidden: true, Extensions: []string{"go", "rs"}, MinGroups: 3},
			},
		},
		{
			name: "partial config with defaults",
			configContent: `
ignore = ["testdata/**"]
`,
			expected: &Config{
				Output: DefaultOutput,
				Format: "html",
				Ignore: []string{"testdata/**"},
				Scan:   Scan{Extensions: []string{}, MinGroups: 1},
			},
		},
		{
			name: "empty values fall back to defaults",
			configContent: `
output = ""
[scan]
min_groups = 0
`,
			expected: &Config{
				Output: DefaultOutput,
				Format: "html",
				Ignore: []string{},
				Scan:   Scan{Extensions: []string{}, MinGroups: 1},
			},
		},
		{
			name: "invalid toml",
			configContent: `
output = [
`,
			expected: &Config{
				Output: DefaultOutput,
				Format: "html",
				Ignore: []string{},
				Scan:   Scan{Extensions: []string{}, MinGroups: 1},
			},
			expectedErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if !tc.noFile {
				if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tc.configContent), 0o644); err != nil {
					t.Fatalf("failed to write test config file: %v", err)
				}
			}

			got, err := ReadConfig(dir)
			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("ReadConfig() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}
