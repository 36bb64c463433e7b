// Package harness turns a Problem and a candidate solution into the file
// set, compile command, and run command the execution engine runs, plus
// the stdin batch payload for the chosen test subset.
package harness

import (
	_ "embed"
	"fmt"
	"text/template"
)

// LanguageSpec describes how one language's harness is assembled: where
// the candidate, main, and common files live, how compile/run commands are
// templated, and the parsed common-module template for that language.
type LanguageSpec struct {
	ID               string
	MainFileName     string
	CommonFileName   string
	CandidateFileName string
	BinaryFileName   string
	CompileCmdTpl    string // "" means interpreted, no compile phase
	RunCmdTpl        string
	CommonTemplate   *template.Template
	SolutionClassName string
}

//go:embed templates/go_common.tmpl
var goCommonSrc string

//go:embed templates/python3_common.tmpl
var python3CommonSrc string

//go:embed templates/cpp17_common.tmpl
var cpp17CommonSrc string

//go:embed templates/java17_common.tmpl
var java17CommonSrc string

var registry = map[string]LanguageSpec{}

func init() {
	mustRegister("go", LanguageSpec{
		ID:                "go",
		MainFileName:      "main.go",
		CommonFileName:    "common.go",
		CandidateFileName: "solution.go",
		BinaryFileName:    "solution",
		CompileCmdTpl:     "go build -o {bin} {src}",
		RunCmdTpl:         "{bin}",
		CommonTemplate:    template.Must(template.New("go_common").Parse(goCommonSrc)),
		SolutionClassName: "Solution",
	})
	mustRegister("python3", LanguageSpec{
		ID:                "python3",
		MainFileName:      "main.py",
		CommonFileName:    "common.py",
		CandidateFileName: "solution.py",
		CompileCmdTpl:     "",
		RunCmdTpl:          "python3 {src}",
		CommonTemplate:    template.Must(template.New("python3_common").Parse(python3CommonSrc)),
		SolutionClassName: "Solution",
	})
	mustRegister("cpp17", LanguageSpec{
		ID:                "cpp17",
		MainFileName:      "main.cpp",
		CommonFileName:    "common.h",
		CandidateFileName: "solution.h",
		BinaryFileName:    "solution",
		CompileCmdTpl:     "g++ -std=c++17 -O2 -o {bin} {src}",
		RunCmdTpl:          "{bin}",
		CommonTemplate:    template.Must(template.New("cpp17_common").Parse(cpp17CommonSrc)),
		SolutionClassName: "Solution",
	})
	mustRegister("java17", LanguageSpec{
		ID:                "java17",
		MainFileName:      "Main.java",
		CommonFileName:    "Common.java",
		CandidateFileName: "Solution.java",
		BinaryFileName:    "Main",
		CompileCmdTpl:     "javac -d {workdir} {src}",
		RunCmdTpl:          "java -Xmx{memoryMb}m -cp {workdir} Main",
		CommonTemplate:    template.Must(template.New("java17_common").Parse(java17CommonSrc)),
		SolutionClassName: "Solution",
	})
}

func mustRegister(id string, spec LanguageSpec) {
	registry[id] = spec
}

// Lookup returns the LanguageSpec registered for id.
func Lookup(id string) (LanguageSpec, error) {
	spec, ok := registry[id]
	if !ok {
		return LanguageSpec{}, fmt.Errorf("unsupported language %q", id)
	}
	return spec, nil
}
