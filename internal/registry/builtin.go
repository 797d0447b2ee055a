package registry

import "judged/internal/model"

// builtinTemplates is the fixed catalog of language templates the core
// ships with, keyed by canonical registry key. Keys not present here are
// silently skipped when a Registry is constructed from a configured
// "supported" list.
var builtinTemplates = map[string]model.LanguageTemplate{
	"c": {
		CompileCommand:   "gcc {file} -o output.exe",
		RunCommand:       "./output.exe",
		FileExtension:    ".c",
		NeedsCompilation: true,
	},
	"cpp": {
		CompileCommand:   "g++ {file} -o output.exe",
		RunCommand:       "./output.exe",
		FileExtension:    ".cpp",
		NeedsCompilation: true,
	},
	"java": {
		CompileCommand:   "javac {file}",
		RunCommand:       "java Main",
		FileExtension:    ".java",
		NeedsCompilation: true,
	},
	"javascript": {
		RunCommand:    "node {file}",
		FileExtension: ".js",
	},
	"python_2": {
		RunCommand:    "python2 {file}",
		FileExtension: ".py",
	},
	"python_3": {
		RunCommand:    "python3 {file}",
		FileExtension: ".py",
	},
	"pascal": {
		CompileCommand:   "fpc {file}",
		RunCommand:       "./code",
		FileExtension:    ".pas",
		NeedsCompilation: true,
	},
	"common_lisp": {
		RunCommand:    "sbcl --script {file}",
		FileExtension: ".lisp",
	},
	"plain_text": {
		RunCommand:    "cat {file}",
		FileExtension: ".txt",
	},
	"brainfuck": {
		RunCommand:    "bf {file}",
		FileExtension: ".bf",
	},
	"r": {
		RunCommand:    "Rscript {file}",
		FileExtension: ".r",
	},
	"rust": {
		CompileCommand:   "rustc {file} -o output.exe",
		RunCommand:       "./output.exe",
		FileExtension:    ".rs",
		NeedsCompilation: true,
	},
	"kotlin": {
		CompileCommand:   "kotlinc {file} -include-runtime -d output.jar",
		RunCommand:       "java -jar output.jar",
		FileExtension:    ".kt",
		NeedsCompilation: true,
	},
}
