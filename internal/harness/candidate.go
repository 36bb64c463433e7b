package harness

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	goFuncRe     = regexp.MustCompile(`(?m)^func\s+(\w+)\s*\(`)
	pyDefRe      = regexp.MustCompile(`(?m)^def\s+(\w+)\s*\(`)
	pyClassRe    = regexp.MustCompile(`(?m)^class\s+(\w+)`)
	javaClassRe  = regexp.MustCompile(`(?m)\bclass\s+(\w+)`)
	cppClassRe   = regexp.MustCompile(`(?m)\bclass\s+(\w+)`)
)

// wrapCandidate renames an already-declared solution type to the canonical
// name the harness expects, or wraps bare top-level functions/defs in a
// synthesized class body when the candidate submitted only method bodies.
func wrapCandidate(spec LanguageSpec, code string) string {
	switch spec.ID {
	case "go":
		// Go has no class concept; bare top-level funcs are the norm and
		// the harness calls them by name directly, so candidate code is
		// used as-is.
		return code
	case "python3":
		if pyClassRe.MatchString(code) {
			return renameFirstMatch(pyClassRe, code, spec.SolutionClassName)
		}
		return wrapPythonFunctions(code, spec.SolutionClassName)
	case "java17":
		if javaClassRe.MatchString(code) {
			return renameFirstMatch(javaClassRe, code, spec.SolutionClassName)
		}
		return wrapJavaMethods(code, spec.SolutionClassName)
	case "cpp17":
		if cppClassRe.MatchString(code) {
			return renameFirstMatch(cppClassRe, code, spec.SolutionClassName)
		}
		return wrapCppMethods(code, spec.SolutionClassName)
	default:
		return code
	}
}

func renameFirstMatch(re *regexp.Regexp, code, canonical string) string {
	loc := re.FindStringSubmatchIndex(code)
	if loc == nil {
		return code
	}
	oldName := code[loc[2]:loc[3]]
	if oldName == canonical {
		return code
	}
	// Replace the declared name everywhere it's referenced as a whole word.
	wordRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(oldName) + `\b`)
	return wordRe.ReplaceAllString(code, canonical)
}

// wrapPythonFunctions indents bare top-level def blocks and nests them
// under a synthesized class so the harness can call Solution().method(...).
func wrapPythonFunctions(code string, className string) string {
	if !pyDefRe.MatchString(code) {
		return code
	}
	lines := strings.Split(code, "\n")
	var body strings.Builder
	fmt.Fprintf(&body, "class %s:\n", className)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			body.WriteString("\n")
			continue
		}
		body.WriteString("    " + line + "\n")
	}
	return insertSelfParam(body.String())
}

// wrapJavaMethods nests bare top-level method bodies inside a synthesized
// class so the harness can call new Solution().method(...).
func wrapJavaMethods(code string, className string) string {
	if !strings.Contains(code, "(") {
		return code
	}
	return fmt.Sprintf("class %s {\n%s\n}\n", className, code)
}

// wrapCppMethods nests bare top-level method bodies inside a synthesized
// class so the harness can call Solution().method(...).
func wrapCppMethods(code string, className string) string {
	if !strings.Contains(code, "(") {
		return code
	}
	return fmt.Sprintf("class %s {\npublic:\n%s\n};\n", className, code)
}

var defSignatureRe = regexp.MustCompile(`def (\w+)\(([^)]*)\)`)

func insertSelfParam(code string) string {
	return defSignatureRe.ReplaceAllStringFunc(code, func(match string) string {
		groups := defSignatureRe.FindStringSubmatch(match)
		name, params := groups[1], groups[2]
		if strings.TrimSpace(params) == "" {
			return fmt.Sprintf("def %s(self)", name)
		}
		return fmt.Sprintf("def %s(self, %s)", name, params)
	})
}
