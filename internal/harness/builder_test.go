package harness_test

import (
	"strings"
	"testing"

	"judgecore/internal/harness"
	"judgecore/internal/types"
)

func twoSumProblem(harnessCode string) types.Problem {
	return types.Problem{
		ProblemID:     "two-sum",
		MemoryLimitMb: 256,
		InputSpec: []types.TypeSpec{
			{Kind: types.KindArray, Of: &types.TypeSpec{Kind: types.KindInt}},
			{Kind: types.KindInt},
		},
		OutputSpec: types.TypeSpec{Kind: types.KindArray, Of: &types.TypeSpec{Kind: types.KindInt}},
		Languages: map[string]types.LanguageAssets{
			"go": {HarnessCode: harnessCode},
		},
	}
}

func TestBuildHarnessMissingHarnessCodeIsConfigurationError(t *testing.T) {
	problem := types.Problem{ProblemID: "p", Languages: map[string]types.LanguageAssets{}}
	_, err := harness.BuildHarness(problem, "go", "package main")
	if err == nil {
		t.Fatalf("expected an error when no harness is configured for the language")
	}
}

func TestBuildHarnessUnsupportedLanguageIsError(t *testing.T) {
	problem := twoSumProblem("package main")
	_, err := harness.BuildHarness(problem, "cobol", "IDENTIFICATION DIVISION.")
	if err == nil {
		t.Fatalf("expected an error for an unregistered language")
	}
}

func TestBuildHarnessAssemblesGoFileSet(t *testing.T) {
	problem := twoSumProblem("package main\n\nfunc main() {}\n")
	bundle, err := harness.BuildHarness(problem, "go", "func twoSum(nums []int, target int) []int { return nil }")
	if err != nil {
		t.Fatalf("BuildHarness: %v", err)
	}
	if len(bundle.Files) != 3 {
		t.Fatalf("expected 3 files (main/common/candidate), got %d", len(bundle.Files))
	}
	names := map[string]bool{}
	for _, f := range bundle.Files {
		names[f.Path] = true
	}
	for _, want := range []string{"main.go", "common.go", "solution.go"} {
		if !names[want] {
			t.Fatalf("expected file %q in bundle, got %+v", want, bundle.Files)
		}
	}
	if bundle.CompileCmd != "go build -o ./solution main.go" {
		t.Fatalf("unexpected compile command: %q", bundle.CompileCmd)
	}
	if bundle.RunCmd != "./solution" {
		t.Fatalf("unexpected run command: %q", bundle.RunCmd)
	}
}

func TestBuildHarnessOmitsCompileCmdForInterpretedLanguage(t *testing.T) {
	problem := types.Problem{
		ProblemID: "p",
		Languages: map[string]types.LanguageAssets{
			"python3": {HarnessCode: "print('hi')"},
		},
	}
	bundle, err := harness.BuildHarness(problem, "python3", "def twoSum(self, nums, target):\n    return []\n")
	if err != nil {
		t.Fatalf("BuildHarness: %v", err)
	}
	if bundle.CompileCmd != "" {
		t.Fatalf("expected no compile command for an interpreted language, got %q", bundle.CompileCmd)
	}
	if bundle.RunCmd != "python3 main.py" {
		t.Fatalf("unexpected run command: %q", bundle.RunCmd)
	}
}

func TestBuildHarnessJavaTemplateFillsMemoryLimit(t *testing.T) {
	problem := types.Problem{
		ProblemID:     "p",
		MemoryLimitMb: 512,
		Languages: map[string]types.LanguageAssets{
			"java17": {HarnessCode: "public class Main {}"},
		},
	}
	bundle, err := harness.BuildHarness(problem, "java17", "class Solution {}")
	if err != nil {
		t.Fatalf("BuildHarness: %v", err)
	}
	if !strings.Contains(bundle.RunCmd, "-Xmx512m") {
		t.Fatalf("expected run command to carry the memory limit, got %q", bundle.RunCmd)
	}
	if bundle.CompileCmd != "javac -d . Main.java" {
		t.Fatalf("expected the compile command to have workdir substituted, got %q", bundle.CompileCmd)
	}
}

func TestBuildHarnessRendersTreeHelpersOnlyWhenNeeded(t *testing.T) {
	withTree := twoSumProblem("package main")
	withTree.OutputSpec = types.TypeSpec{Kind: types.KindTree, Of: &types.TypeSpec{Kind: types.KindInt}}
	bundle, err := harness.BuildHarness(withTree, "go", "func solve() {}")
	if err != nil {
		t.Fatalf("BuildHarness: %v", err)
	}
	common := fileContent(t, bundle, "common.go")
	if !strings.Contains(common, "TreeNode") {
		t.Fatalf("expected tree helpers to be rendered when OutputSpec contains a tree, got: %s", common)
	}

	withoutTree := twoSumProblem("package main")
	bundle2, err := harness.BuildHarness(withoutTree, "go", "func solve() {}")
	if err != nil {
		t.Fatalf("BuildHarness: %v", err)
	}
	common2 := fileContent(t, bundle2, "common.go")
	if strings.Contains(common2, "TreeNode") {
		t.Fatalf("expected no tree helpers when no spec mentions a tree, got: %s", common2)
	}
}

func fileContent(t *testing.T, bundle harness.Bundle, path string) string {
	t.Helper()
	for _, f := range bundle.Files {
		if f.Path == path {
			return f.Content
		}
	}
	t.Fatalf("file %q not found in bundle", path)
	return ""
}

func TestWrapCandidateGoPassesThroughUnchanged(t *testing.T) {
	spec, err := harness.Lookup("go")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	src := "func twoSum(nums []int, target int) []int { return nil }"
	if got := harness.WrapCandidateForTest(spec, src); got != src {
		t.Fatalf("expected go candidate code to pass through unchanged, got %q", got)
	}
}

func TestWrapCandidatePythonRenamesDeclaredClass(t *testing.T) {
	spec, err := harness.Lookup("python3")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	src := "class MySolution:\n    def twoSum(self, nums, target):\n        return MySolution().helper()\n"
	got := harness.WrapCandidateForTest(spec, src)
	if strings.Contains(got, "MySolution") {
		t.Fatalf("expected every occurrence of the declared class name to be renamed, got: %s", got)
	}
	if !strings.Contains(got, "class Solution:") {
		t.Fatalf("expected the class to be renamed to Solution, got: %s", got)
	}
}

func TestWrapCandidatePythonWrapsBareFunctionsWithSelf(t *testing.T) {
	spec, err := harness.Lookup("python3")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	src := "def twoSum(nums, target):\n    return []\n"
	got := harness.WrapCandidateForTest(spec, src)
	if !strings.Contains(got, "class Solution:") {
		t.Fatalf("expected bare functions to be wrapped in a Solution class, got: %s", got)
	}
	if !strings.Contains(got, "def twoSum(self, nums, target)") {
		t.Fatalf("expected self to be inserted as the first parameter, got: %s", got)
	}
}

func TestWrapCandidatePythonInsertsSelfOnlyParam(t *testing.T) {
	spec, err := harness.Lookup("python3")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	src := "def noArgs():\n    return 1\n"
	got := harness.WrapCandidateForTest(spec, src)
	if !strings.Contains(got, "def noArgs(self)") {
		t.Fatalf("expected a no-arg function to get only self, got: %s", got)
	}
}

func TestWrapCandidateJavaAndCppRenameDeclaredClass(t *testing.T) {
	javaSpec, _ := harness.Lookup("java17")
	got := harness.WrapCandidateForTest(javaSpec, "class Impl { int twoSum() { return new Impl().helper(); } }")
	if strings.Contains(got, "Impl") {
		t.Fatalf("expected java class name to be fully renamed, got: %s", got)
	}

	cppSpec, _ := harness.Lookup("cpp17")
	got2 := harness.WrapCandidateForTest(cppSpec, "class Impl { public: int twoSum(); };")
	if strings.Contains(got2, "Impl") {
		t.Fatalf("expected cpp class name to be fully renamed, got: %s", got2)
	}
}

func TestWrapCandidateJavaWrapsBareMethodInSolutionClass(t *testing.T) {
	spec, err := harness.Lookup("java17")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	src := "public int[] twoSum(int[] nums, int target) {\n    return null;\n}\n"
	got := harness.WrapCandidateForTest(spec, src)
	if !strings.Contains(got, "class Solution {") {
		t.Fatalf("expected a bare java method to be wrapped in a Solution class, got: %s", got)
	}
	if !strings.Contains(got, "public int[] twoSum(int[] nums, int target)") {
		t.Fatalf("expected the method body to survive wrapping unchanged, got: %s", got)
	}
}

func TestWrapCandidateCppWrapsBareMethodInSolutionClass(t *testing.T) {
	spec, err := harness.Lookup("cpp17")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	src := "vector<int> twoSum(vector<int>& nums, int target) {\n    return {};\n}\n"
	got := harness.WrapCandidateForTest(spec, src)
	if !strings.Contains(got, "class Solution {") || !strings.Contains(got, "public:") {
		t.Fatalf("expected a bare cpp method to be wrapped in a public Solution class, got: %s", got)
	}
	if !strings.Contains(got, "vector<int> twoSum(vector<int>& nums, int target)") {
		t.Fatalf("expected the method body to survive wrapping unchanged, got: %s", got)
	}
}
