package readfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "empty file",
			in:   "",
			out:  "",
		},
		{
			name: "unix newlines",
			in:   "x = 1\ny = 2\n",
			out:  "x = 1\ny = 2\n",
		},
		{
			name: "windows newlines",
			in:   "x = 1\r\ny = 2\r\n",
			out:  "x = 1\ny = 2\n",
		},
		{
			name: "standalone carriage returns preserved",
			in:   "a\rb\n\r\n",
			out:  "a\rb\n\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "input.jl")
			if err := os.WriteFile(path, []byte(tc.in), 0o644); err != nil {
				t.Fatalf("write temp file: %v", err)
			}

			got, err := ReadNormalized(path)
			if err != nil {
				t.Fatalf("ReadNormalized: %v", err)
			}
			if got != tc.out {
				t.Fatalf("got %q want %q", got, tc.out)
			}
		})
	}
}

func TestReadAllNormalized(t *testing.T) {
	got, err := ReadAllNormalized(strings.NewReader("f(x)\r\n"))
	if err != nil {
		t.Fatalf("ReadAllNormalized: %v", err)
	}
	if got != "f(x)\n" {
		t.Fatalf("got %q", got)
	}
}

func TestReadNormalizedMissingFile(t *testing.T) {
	if _, err := ReadNormalized(filepath.Join(t.TempDir(), "nope.jl")); !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not exist", err)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("#!/usr/bin/env julia\nprintln(1)"); got != "#!/usr/bin/env julia" {
		t.Fatalf("FirstLine = %q", got)
	}
	if got := FirstLine("x"); got != "x" {
		t.Fatalf("FirstLine = %q", got)
	}
}
