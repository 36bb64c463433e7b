package harness

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"judgecore/internal/types"
)

// Bundle is the output of BuildHarness: the file set to compile/run, the
// compile command (empty for interpreted languages), and the run command.
type Bundle struct {
	Files      []types.File
	CompileCmd string
	RunCmd     string
}

// commonTemplateData drives the per-language common-module template: which
// optional helper sections (tree/linkedList/graph) to emit.
type commonTemplateData struct {
	HasTree       bool
	HasLinkedList bool
	HasGraph      bool
}

// BuildHarness assembles the file set, compile command, and run command
// for running candidateCode against problem in the given language. A
// missing harness program in the problem is a hard configuration error,
// not a compile error, per the orchestrator's failure semantics.
func BuildHarness(problem types.Problem, language string, candidateCode string) (Bundle, error) {
	spec, err := Lookup(language)
	if err != nil {
		return Bundle{}, err
	}

	assets, ok := problem.Languages[language]
	if !ok || strings.TrimSpace(assets.HarnessCode) == "" {
		return Bundle{}, fmt.Errorf("problem %s has no harness configured for language %q", problem.ProblemID, language)
	}

	commonSrc, err := renderCommon(spec, problem)
	if err != nil {
		return Bundle{}, fmt.Errorf("render common module: %w", err)
	}

	wrapped := wrapCandidate(spec, candidateCode)

	files := []types.File{
		{Path: spec.MainFileName, Content: assets.HarnessCode},
		{Path: spec.CommonFileName, Content: commonSrc},
		{Path: spec.CandidateFileName, Content: wrapped},
	}

	compileCmd := ""
	if spec.CompileCmdTpl != "" {
		compileCmd = expandCommand(spec.CompileCmdTpl, spec, map[string]string{
			"workdir": ".",
		})
	}
	runCmd := expandCommand(spec.RunCmdTpl, spec, map[string]string{
		"memoryMb": strconv.Itoa(problem.EffectiveMemoryLimitMb()),
		"workdir":  ".",
	})

	return Bundle{Files: files, CompileCmd: compileCmd, RunCmd: runCmd}, nil
}

func renderCommon(spec LanguageSpec, problem types.Problem) (string, error) {
	data := commonTemplateData{}
	for _, t := range problem.InputSpec {
		data.HasTree = data.HasTree || t.ContainsKind(types.KindTree)
		data.HasLinkedList = data.HasLinkedList || t.ContainsKind(types.KindLinkedList)
		data.HasGraph = data.HasGraph || t.ContainsKind(types.KindGraph)
	}
	data.HasTree = data.HasTree || problem.OutputSpec.ContainsKind(types.KindTree)
	data.HasLinkedList = data.HasLinkedList || problem.OutputSpec.ContainsKind(types.KindLinkedList)
	data.HasGraph = data.HasGraph || problem.OutputSpec.ContainsKind(types.KindGraph)

	var buf bytes.Buffer
	if err := spec.CommonTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// expandCommand substitutes {src}, {bin}, {extraFlags}, and any entries of
// extra into tpl, following the teacher's own command-template convention.
func expandCommand(tpl string, spec LanguageSpec, extra map[string]string) string {
	out := tpl
	out = strings.ReplaceAll(out, "{src}", spec.MainFileName)
	out = strings.ReplaceAll(out, "{bin}", "./"+spec.BinaryFileName)
	out = strings.ReplaceAll(out, "{extraFlags}", "")
	for k, v := range extra {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}
