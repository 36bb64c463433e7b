package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"judgecore/internal/judge"
	"judgecore/internal/types"
	"judgecore/pkg/logger"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
)

// session holds judgectl's REPL state: the current problem, candidate
// source, language, and the orchestrator it drives.
type session struct {
	orch       *judge.Orchestrator
	rl         *readline.Instance
	transcript *transcriptWriter

	problem  *types.Problem
	source   string
	language string
	filter   types.Filter
}

func newSession(orch *judge.Orchestrator, defaultLanguage string, transcript *transcriptWriter) (*session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "judgectl> ",
		HistoryFile: "",
	})
	if err != nil {
		return nil, fmt.Errorf("init readline failed: %w", err)
	}
	return &session{
		orch:       orch,
		rl:         rl,
		transcript: transcript,
		language:   defaultLanguage,
		filter:     types.FilterAll,
	}, nil
}

func (s *session) Run(ctx context.Context) {
	defer s.rl.Close()
	for {
		line, err := s.rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			s.println("bye")
			return
		}
		if err != nil {
			s.println("read input failed: %v", err)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.transcript.WriteLine("> " + line)
		if err := s.dispatch(ctx, line); err != nil {
			if errors.Is(err, io.EOF) {
				s.println("bye")
				return
			}
			s.println("error: %v", err)
		}
	}
}

func (s *session) dispatch(ctx context.Context, line string) error {
	tokens, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse command failed: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	switch tokens[0] {
	case "help":
		s.printHelp()
	case "exit", "quit":
		return io.EOF
	case "problem":
		return s.cmdProblem(tokens[1:])
	case "source":
		return s.cmdSource(tokens[1:])
	case "lang":
		return s.cmdLang(tokens[1:])
	case "filter":
		return s.cmdFilter(tokens[1:])
	case "run":
		return s.cmdRun(ctx)
	default:
		return fmt.Errorf("unknown command: %s (try 'help')", tokens[0])
	}
	return nil
}

func (s *session) cmdProblem(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: problem <path-to-problem.json>")
	}
	problem, err := loadProblem(args[0])
	if err != nil {
		return err
	}
	s.problem = &problem
	s.println("loaded problem %s (%d tests)", problem.ProblemID, len(problem.Tests))
	return nil
}

func (s *session) cmdSource(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: source <path-to-solution-file>")
	}
	src, err := loadSource(args[0])
	if err != nil {
		return err
	}
	s.source = src
	s.println("loaded %d bytes of source", len(src))
	return nil
}

func (s *session) cmdLang(args []string) error {
	if len(args) == 0 {
		s.println("language: %s", s.language)
		return nil
	}
	s.language = args[0]
	s.println("language set to %s", s.language)
	return nil
}

func (s *session) cmdFilter(args []string) error {
	if len(args) == 0 {
		s.println("filter: %s", s.filter)
		return nil
	}
	switch types.Filter(args[0]) {
	case types.FilterAll, types.FilterVisible:
		s.filter = types.Filter(args[0])
	default:
		return fmt.Errorf("unknown filter %q, use all|visible", args[0])
	}
	s.println("filter set to %s", s.filter)
	return nil
}

func (s *session) cmdRun(ctx context.Context) error {
	if s.problem == nil {
		return fmt.Errorf("no problem loaded, use: problem <path>")
	}
	result := s.orch.Judge(ctx, *s.problem, s.source, s.language, s.filter, nil)
	body, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Warn(ctx, "marshal judge result for display failed")
		return err
	}
	s.println("%s", string(body))
	return nil
}

func (s *session) printHelp() {
	s.println("usage: <command> [args]")
	s.println("commands:")
	s.println("  problem <path.json>   load a problem definition")
	s.println("  source <path>         load candidate solution source")
	s.println("  lang [id]             get/set the target language")
	s.println("  filter [all|visible]  get/set the test filter")
	s.println("  run                   judge the loaded source against the loaded problem")
	s.println("  help                  show this message")
	s.println("  exit                  quit")
}

func (s *session) println(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	fmt.Fprintln(s.rl.Stdout(), line)
	s.transcript.WriteLine(line)
}
