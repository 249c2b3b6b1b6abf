package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/dmitrijs2005/dbkeeper/internal/logging"
)

func osPipe(t *testing.T) (*os.File, *os.File, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err == nil {
		t.Cleanup(func() { _ = r.Close() })
	}
	return r, w, err
}

func newTestLogger(t *testing.T) (logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogLogger(slog.New(h)), &buf
}

// scriptedPrompter answers prompts from fixed queues.
type scriptedPrompter struct {
	lines     []string
	passwords []string
	prompts   []string
	handedOut [][]byte
}

func (p *scriptedPrompter) Line(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.lines) == 0 {
		return "", io.EOF
	}
	l := p.lines[0]
	p.lines = p.lines[1:]
	return l, nil
}

func (p *scriptedPrompter) Password(prompt string) ([]byte, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.passwords) == 0 {
		return nil, io.EOF
	}
	pw := []byte(p.passwords[0])
	p.passwords = p.passwords[1:]
	p.handedOut = append(p.handedOut, pw)
	return pw, nil
}
