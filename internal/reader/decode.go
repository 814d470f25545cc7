package reader

import (
	"bytes"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// openDecoded opens path and returns a reader producing UTF-8. A UTF-16 or
// UTF-8 byte order mark selects the encoding; without one UTF-8 is assumed.
func openDecoded(path string) (io.Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return transform.NewReader(bytes.NewReader(data), decoder), nil
}

// readLines returns the decoded lines of path without line terminators.
// Trailing blank lines are dropped.
func readLines(path string) ([]string, error) {
	r, err := openDecoded(path)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
