package lang

import (
	"path/filepath"
	"strings"
)

type ID string

const (
	Plain ID = "plain"
	Julia ID = "julia"
)

var extMap = map[string]ID{
	".jl": Julia,

	".toml": Plain,
	".md":   Plain,
	".txt":  Plain,
}

var fileMap = map[string]ID{
	"juliarc.jl":    Julia,
	"startup.jl":    Julia,
	"Project.toml":  Plain,
	"Manifest.toml": Plain,
}

func Detect(path string) ID {
	base := filepath.Base(path)
	if id, ok := fileMap[base]; ok {
		return id
	}
	ext := strings.ToLower(filepath.Ext(base))
	if id, ok := extMap[ext]; ok {
		return id
	}
	return Plain
}

// DetectWithShebang falls back to the interpreter named on a #! line.
func DetectWithShebang(path string, firstLine string) ID {
	if id := Detect(path); id != Plain {
		return id
	}

	if !strings.HasPrefix(firstLine, "#!") {
		return Plain
	}
	if strings.Contains(strings.ToLower(firstLine), "julia") {
		return Julia
	}
	return Plain
}
