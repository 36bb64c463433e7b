package protocol

import (
	"encoding/json"

	"judgecore/internal/types"
)

// BuildStdin serializes the given tests into the batched stdin wire
// format: {"testcases":[{"id":0,"input":[...]}, ...]}. id is the 0-based
// index within tests, fixed by the caller's filtering order.
func BuildStdin(tests []types.TestCase) (string, error) {
	batch := types.StdinBatch{Testcases: make([]types.StdinTestcase, len(tests))}
	for i, t := range tests {
		batch.Testcases[i] = types.StdinTestcase{ID: i, Input: t.Input}
	}
	b, err := json.Marshal(batch)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
