package model

// LanguageTemplate describes how to compile (optionally) and run a
// submission in one language. CompileCommand and RunCommand contain the
// literal placeholder "{file}" substituted with the source path at
// execution time.
type LanguageTemplate struct {
	CompileCommand   string // empty when the language needs no compile step
	RunCommand       string
	FileExtension    string // includes the leading dot, e.g. ".py"
	NeedsCompilation bool
}

// TestCase is one (input, expected output) pair used to score a task.
type TestCase struct {
	Input    string
	Expected string
}
