// Package stacktrace trims goroutine dumps down to frames inside this module.
package stacktrace

import (
	"bufio"
	"bytes"
	"strings"
)

// InternalPaths returns the "internal/...go:line" location of every frame
// in stack that belongs to an internal package.
func InternalPaths(stack []byte) []string {
	var paths []string

	sc := bufio.NewScanner(bytes.NewReader(stack))
	for sc.Scan() {
		// file lines are tab indented: "\t/path/to/file.go:42 +0x1d"
		line := strings.TrimSpace(sc.Text())
		loc, _, _ := strings.Cut(line, " ")
		if !strings.Contains(loc, ".go:") {
			continue
		}
		if _, rel, ok := strings.Cut(loc, "/internal/"); ok {
			paths = append(paths, "internal/"+rel)
		}
	}

	return paths
}
