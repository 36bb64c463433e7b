// Package protocol implements the sentinel-delimited wire format between
// the engine and a candidate's harness program: a batched JSON stdin
// payload in, a sentinel-framed JSON stdout payload out.
package protocol

import (
	"encoding/json"
	"strings"

	"judgecore/internal/types"
)

const (
	beginSentinel = "<<<JUDGE_OUTPUT_V1_BEGIN>>>"
	endSentinel   = "<<<JUDGE_OUTPUT_V1_END>>>"
)

// ParseErrorKind tags why sentinel-delimited recovery failed.
type ParseErrorKind string

const (
	MissingSentinel ParseErrorKind = "MISSING_SENTINEL"
	MalformedJSON   ParseErrorKind = "MALFORMED_JSON"
	InvalidStructure ParseErrorKind = "INVALID_STRUCTURE"
)

// ParseResult is the tagged outcome of Parse. Exactly one of Output or Err
// is meaningful; UserStdout is always populated best-effort.
type ParseResult struct {
	Output     types.JudgeOutput
	UserStdout string
	Err        *ParseError
}

// ParseError carries the failure kind and a human-readable detail.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// HasBeginSentinel reports whether stdout contains the BEGIN marker at all,
// independent of whether a well-formed END/JSON region follows it. Callers
// use this to distinguish "candidate never started emitting the payload"
// from "candidate emitted a malformed payload" when a run phase fails.
func HasBeginSentinel(stdout string) bool {
	return strings.Contains(stdout, beginSentinel)
}

// Parse recovers the structured judge payload from arbitrary stdout, or
// reports precisely why recovery failed. It never panics; it always
// returns a tagged ParseResult.
func Parse(stdout string) ParseResult {
	endIdx := strings.LastIndex(stdout, endSentinel)
	if endIdx < 0 {
		return ParseResult{
			UserStdout: strings.TrimSpace(stdout),
			Err:        &ParseError{Kind: MissingSentinel, Message: "no END sentinel found"},
		}
	}

	beforeEnd := stdout[:endIdx]
	beginIdx := strings.LastIndex(beforeEnd, beginSentinel)
	if beginIdx < 0 {
		return ParseResult{
			UserStdout: strings.TrimSpace(stdout),
			Err:        &ParseError{Kind: MissingSentinel, Message: "no BEGIN sentinel found before END"},
		}
	}

	userStdout := strings.TrimSpace(stdout[:beginIdx])
	jsonBody := strings.TrimSpace(stdout[beginIdx+len(beginSentinel) : endIdx])

	var probe any
	if err := json.Unmarshal([]byte(jsonBody), &probe); err != nil {
		return ParseResult{
			UserStdout: userStdout,
			Err:        &ParseError{Kind: MalformedJSON, Message: err.Error()},
		}
	}

	if err := validateStructure(jsonBody); err != nil {
		return ParseResult{
			UserStdout: userStdout,
			Err:        &ParseError{Kind: InvalidStructure, Message: err.Error()},
		}
	}

	var output types.JudgeOutput
	if err := json.Unmarshal([]byte(jsonBody), &output); err != nil {
		return ParseResult{
			UserStdout: userStdout,
			Err:        &ParseError{Kind: InvalidStructure, Message: err.Error()},
		}
	}

	return ParseResult{Output: output, UserStdout: userStdout}
}

// validateStructure decodes the already-valid JSON payload into a
// loosely-typed form, before any typed JudgeOutput decode, and checks its
// shape: root is an object, results is an array of objects with numeric id
// and a recognized status, and meta.timeMs is present and numeric.
func validateStructure(jsonBody string) error {
	var root map[string]any
	if err := json.Unmarshal([]byte(jsonBody), &root); err != nil {
		return invalidStructureErr("root is not an object")
	}

	rawResults, ok := root["results"]
	if !ok {
		return invalidStructureErr("missing results")
	}
	results, ok := rawResults.([]any)
	if !ok {
		return invalidStructureErr("results is not an array")
	}
	for _, r := range results {
		obj, ok := r.(map[string]any)
		if !ok {
			return invalidStructureErr("result entry is not an object")
		}
		if _, ok := obj["id"].(float64); !ok {
			return invalidStructureErr("result.id is not numeric")
		}
		status, ok := obj["status"].(string)
		if !ok || (status != "OK" && status != "ERROR") {
			return invalidStructureErr("result.status is not OK or ERROR")
		}
	}

	rawMeta, ok := root["meta"]
	if !ok {
		return invalidStructureErr("missing meta")
	}
	meta, ok := rawMeta.(map[string]any)
	if !ok {
		return invalidStructureErr("meta is not an object")
	}
	if _, ok := meta["timeMs"].(float64); !ok {
		return invalidStructureErr("meta.timeMs is not numeric")
	}
	return nil
}

type structureError string

func (e structureError) Error() string { return string(e) }

func invalidStructureErr(msg string) error { return structureError(msg) }
