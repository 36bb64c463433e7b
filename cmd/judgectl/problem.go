package main

import (
	"encoding/json"
	"fmt"
	"os"

	"judgecore/internal/types"
)

// loadProblem reads a Problem definition from a JSON file. Problem and its
// nested Value fields already know how to (de)serialize themselves, so the
// REPL's on-disk problem format is just the JSON wire shape, unadorned.
func loadProblem(path string) (types.Problem, error) {
	var problem types.Problem
	data, err := os.ReadFile(path)
	if err != nil {
		return problem, fmt.Errorf("read problem file failed: %w", err)
	}
	if err := json.Unmarshal(data, &problem); err != nil {
		return problem, fmt.Errorf("parse problem file failed: %w", err)
	}
	return problem, nil
}

// loadSource reads candidate solution source from a file.
func loadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source file failed: %w", err)
	}
	return string(data), nil
}
