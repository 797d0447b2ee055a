// Package testcases loads the ordered (input, expected output) pairs a
// problem is judged against.
package testcases

import (
	"os"
	"path/filepath"
	"sort"

	"judged/internal/model"
)

// defaultCases is the built-in smoke-test pair list returned when a
// problem has no configured test-cases directory. This is documented
// behavior, not a fallback masking a configuration error.
var defaultCases = []model.TestCase{
	{Input: "5\n10\n", Expected: "15\n"},
	{Input: "3\n7\n", Expected: "10\n"},
}

// Loader resolves a problem id to its ordered test cases under a
// configured root directory.
type Loader struct {
	root string
}

// New builds a Loader rooted at the configured test-cases directory.
func New(root string) *Loader {
	return &Loader{root: root}
}

// Load returns the ordered test cases for problemID. If
// "<root>/<problemID>" does not exist, it returns the built-in default
// pair list. Otherwise it enumerates "*.in" files, sorted lexicographically
// by full path, and pairs each with its sibling "*.out" file. I/O errors on
// an individual file do not abort the load; such an entry gets an empty
// string for whichever side failed to read.
func (l *Loader) Load(problemID string) []model.TestCase {
	dir := filepath.Join(l.root, problemID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return append([]model.TestCase(nil), defaultCases...)
	}

	var inputPaths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) != ".in" {
			continue
		}
		inputPaths = append(inputPaths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(inputPaths)

	cases := make([]model.TestCase, 0, len(inputPaths))
	for _, inPath := range inputPaths {
		outPath := inPath[:len(inPath)-len(".in")] + ".out"
		cases = append(cases, model.TestCase{
			Input:    readOrEmpty(inPath),
			Expected: readOrEmpty(outPath),
		})
	}
	return cases
}

func readOrEmpty(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
