package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
	getState     = term.GetState
	restoreState = term.Restore
)

type lineResult struct {
	line string
	err  error
}

// Prompter reads answers from one input stream. Passwords are read without
// echo when the stream is a terminal. Every read gives up when its context is
// cancelled; a line that arrives afterwards is kept for the next read.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer
	fd     int
	tty    bool

	pending chan lineResult
}

func NewPrompter(in io.Reader, w io.Writer) *Prompter {
	p := &Prompter{reader: bufio.NewReader(in), w: w}
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if p.pending == nil {
		ch := make(chan lineResult, 1)
		p.pending = ch
		go func() {
			line, err := p.reader.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-p.pending:
		p.pending = nil
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && len(res.line) > 0 {
				return strings.TrimSpace(res.line), nil
			}
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

// Line reads one trimmed line, without a prompt. It returns io.EOF once the
// input is exhausted. A partial last line is returned before io.EOF.
func (p *Prompter) Line(ctx context.Context) (string, error) {
	return p.readLine(ctx)
}

// Text prints "prompt: " and reads the answer.
func (p *Prompter) Text(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.w, prompt+": "); err != nil {
		return "", err
	}
	return p.readLine(ctx)
}

// Password prompts for a secret. The caller should wipe the returned slice.
func (p *Prompter) Password(ctx context.Context, prompt string) ([]byte, error) {
	if !p.tty {
		s, err := p.Text(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}

	if _, err := fmt.Fprint(p.w, prompt+": "); err != nil {
		return nil, err
	}

	state, err := getState(p.fd)
	if err != nil {
		return nil, err
	}

	type passwordResult struct {
		pw  []byte
		err error
	}
	read := readPassword
	ch := make(chan passwordResult, 1)
	go func() {
		pw, err := read(p.fd)
		ch <- passwordResult{pw: pw, err: err}
	}()

	select {
	case <-ctx.Done():
		// echo stays off until ReadPassword returns, so put it back here
		_ = restoreState(p.fd, state)
		fmt.Fprintln(p.w)
		return nil, ctx.Err()
	case res := <-ch:
		fmt.Fprintln(p.w)
		if res.err != nil {
			return nil, res.err
		}
		return res.pw, nil
	}
}
