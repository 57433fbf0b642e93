package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrClosed is returned once input reaches EOF.
var ErrClosed = errors.New("ui: input closed")

// Prompter asks for one line at a time. Passwords are read without echo when
// input is a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool

	readPassword func(fd int) ([]byte, error)
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1, readPassword: term.ReadPassword}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Line prints label and returns the trimmed line.
func (p *Prompter) Line(label string) (string, error) {
	if label != "" {
		fmt.Fprint(p.out, label)
	}
	s, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && s != "" {
			return strings.TrimSpace(s), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrClosed
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Password reads a secret. Off a terminal it falls back to Line. Input
// already buffered (pasted ahead of the prompt) is consumed first so lines
// are never read out of order.
func (p *Prompter) Password(label string) (string, error) {
	if !p.tty || p.in.Buffered() > 0 {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := p.readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Errorf prints a one-line error.
func (p *Prompter) Errorf(format string, args ...any) {
	fmt.Fprintf(p.out, "error: "+format+"\n", args...)
}

// Fields prints field messages in order.
func (p *Prompter) Fields(order []string, msgs map[string]string) {
	for _, f := range order {
		if m, ok := msgs[f]; ok {
			fmt.Fprintf(p.out, "  %s: %s\n", f, m)
		}
	}
}
