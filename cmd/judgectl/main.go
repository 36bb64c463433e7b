// Command judgectl is an interactive REPL for running a candidate
// solution against a locally loaded problem definition, wiring the
// sandbox, execution engine, and judge orchestrator together without
// any network service in front of them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"judgecore/internal/engine"
	"judgecore/internal/judge"
	"judgecore/internal/sandbox"
	"judgecore/pkg/logger"
)

const defaultConfigPath = "configs/judgectl.yaml"

func main() {
	sandbox.MaybeRunInit()

	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	workspaceBase := flag.String("workspace", "", "Override workspace base directory")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		return
	}
	if *workspaceBase != "" {
		cfg.WorkspaceBase = *workspaceBase
	}

	if err := logger.Init(logger.Config{Level: "info", Format: "console", Service: "judgectl"}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return
	}

	sb, err := sandbox.NewLocal(sandbox.Config{
		WorkspaceBase:    cfg.WorkspaceBase,
		EnableCgroup:     cfg.EnableCgroup,
		EnableNamespaces: cfg.EnableNamespaces,
		EnableSeccomp:    cfg.EnableSeccomp,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init sandbox failed: %v\n", err)
		return
	}

	eng := engine.New(sb, cfg.WorkspaceBase)
	orch := judge.NewOrchestrator(eng)

	transcript, err := newTranscriptWriter(cfg.TranscriptDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init transcript writer failed: %v\n", err)
		return
	}
	defer func() {
		_ = transcript.Close()
	}()

	sess, err := newSession(orch, cfg.DefaultLanguage, transcript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init session failed: %v\n", err)
		return
	}
	sess.Run(context.Background())
}
