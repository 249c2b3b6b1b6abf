package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Prompter reads user answers for the console.
type Prompter interface {
	// Line prints prompt and returns the next input line without its
	// line terminator.
	Line(prompt string) (string, error)
	// Password prints prompt and reads a secret. The caller owns the
	// returned slice and must wipe it.
	Password(prompt string) ([]byte, error)
}

// consolePrompter reads from a buffered reader and writes prompts to w.
// When the input is a terminal, passwords are read without echo.
type consolePrompter struct {
	reader *bufio.Reader
	w      io.Writer
	fd     int
}

func newConsolePrompter(in io.Reader, w io.Writer) *consolePrompter {
	p := &consolePrompter{reader: bufio.NewReader(in), w: w, fd: -1}
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

func (p *consolePrompter) Line(prompt string) (string, error) {
	return GetSimpleText(p.reader, prompt, p.w)
}

func (p *consolePrompter) Password(prompt string) ([]byte, error) {
	if p.fd >= 0 {
		return GetPassword(p.fd, prompt, p.w)
	}
	if _, err := fmt.Fprint(p.w, prompt); err != nil {
		return nil, err
	}
	var line []byte
	for {
		chunk, err := p.reader.ReadSlice('\n')
		line = appendSecret(line, chunk)
		// chunk aliases the reader's buffer.
		clear(chunk)
		switch {
		case err == nil:
			return line, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && len(line) > 0:
			return line, nil
		default:
			clear(line)
			return nil, err
		}
	}
}

// appendSecret appends src to dst. When dst has to grow, the old backing
// array is wiped so no partial copy of the secret is left behind.
func appendSecret(dst, src []byte) []byte {
	if len(dst)+len(src) <= cap(dst) {
		return append(dst, src...)
	}
	grown := make([]byte, len(dst), 2*cap(dst)+len(src))
	copy(grown, dst)
	clear(dst)
	return append(grown, src...)
}

// GetSimpleText prints prompt to w and reads a single line from reader.
// Trailing CR/LF is removed; other whitespace is kept for the parser. If EOF
// occurs after some input was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GetPassword prints prompt to w and reads a password from the terminal fd
// without echo. A newline is printed after the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(fd int, prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
