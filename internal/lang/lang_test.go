package lang

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want ID
	}{
		{path: "src/Foo.jl", want: Julia},
		{path: "src/FOO.JL", want: Julia},
		{path: "Project.toml", want: Plain},
		{path: "README", want: Plain},
		{path: "/home/u/.julia/config/startup.jl", want: Julia},
	}
	for _, tc := range tests {
		if got := Detect(tc.path); got != tc.want {
			t.Fatalf("Detect(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestDetectWithShebang(t *testing.T) {
	tests := []struct {
		path  string
		first string
		want  ID
	}{
		{path: "run", first: "#!/usr/bin/env julia", want: Julia},
		{path: "run", first: "#!/usr/bin/env -S julia --project", want: Julia},
		{path: "run", first: "#!/bin/sh", want: Plain},
		{path: "run", first: "println(1)", want: Plain},
		{path: "a.jl", first: "#!/bin/sh", want: Julia},
	}
	for _, tc := range tests {
		if got := DetectWithShebang(tc.path, tc.first); got != tc.want {
			t.Fatalf("DetectWithShebang(%q, %q) = %s, want %s", tc.path, tc.first, got, tc.want)
		}
	}
}
