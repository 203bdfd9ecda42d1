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

// readPassword and isTerminal are test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var errPasswordMismatch = errors.New("passwords do not match")

// prompter asks the user for input. Passwords are read without echo when
// stdin is a terminal and as plain lines otherwise, so that scripts can
// pipe them in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// Text prints prompt and reads one line. The trailing newline is trimmed;
// a partial line before EOF is returned as is.
func (p *prompter) Text(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password prints prompt and reads a secret.
func (p *prompter) Password(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
			return "", err
		}
		line, err := p.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// NewPassword reads a password twice and fails when the copies differ.
func (p *prompter) NewPassword(prompt string) (string, error) {
	first, err := p.Password(prompt)
	if err != nil {
		return "", err
	}
	second, err := p.Password("Repeat " + strings.ToLower(prompt))
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}
