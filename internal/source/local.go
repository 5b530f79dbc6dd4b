// Package source obtains raw CSV text for the analysis engine, either from
// the local filesystem or from a remote file-storage service.
package source

import (
	"fmt"
	"io"
	"os"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ReadLocal returns the full decoded text of a local file, or of stdin when
// path is "-".
func ReadLocal(path string) (string, error) {
	if path == Stdin {
		return ReadAll(os.Stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(b), nil
}

// ReadAll drains r into a string.
func ReadAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}
