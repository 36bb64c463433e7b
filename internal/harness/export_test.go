package harness

// WrapCandidateForTest exposes wrapCandidate to the external harness_test
// package without widening the public API.
var WrapCandidateForTest = wrapCandidate
