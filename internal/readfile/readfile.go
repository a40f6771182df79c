package readfile

import (
	"io"
	"os"
	"strings"
)

// ReadNormalized reads path with CRLF line endings turned into LF.
// Standalone carriage returns are kept.
func ReadNormalized(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Normalize(string(data)), nil
}

// ReadAllNormalized is ReadNormalized for an already open reader, e.g. stdin.
func ReadAllNormalized(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Normalize(string(data)), nil
}

func Normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// FirstLine returns text up to the first newline.
func FirstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}
