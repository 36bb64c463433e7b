package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
)

// transcriptWriter appends every REPL line (prompt, command, response) to a
// zstd-compressed session log, so long debugging sessions against a local
// problem set don't pile up as uncompressed text on disk.
type transcriptWriter struct {
	file    *os.File
	encoder *zstd.Encoder
}

func newTranscriptWriter(dir string) (*transcriptWriter, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create transcript dir failed: %w", err)
	}
	name := fmt.Sprintf("session-%s.log.zst", time.Now().UTC().Format("20060102T150405Z"))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("create transcript file failed: %w", err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create zstd encoder failed: %w", err)
	}
	return &transcriptWriter{file: f, encoder: enc}, nil
}

func (t *transcriptWriter) WriteLine(line string) {
	if t == nil {
		return
	}
	_, _ = t.encoder.Write([]byte(line))
	_, _ = t.encoder.Write([]byte("\n"))
}

func (t *transcriptWriter) Close() error {
	if t == nil {
		return nil
	}
	if err := t.encoder.Close(); err != nil {
		_ = t.file.Close()
		return err
	}
	return t.file.Close()
}
