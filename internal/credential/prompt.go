package credential

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

// TerminalPrompter reads secrets from a terminal with echo disabled.
// When the input is not a terminal, e.g., piped, a plain line is read instead.
type TerminalPrompter struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminalPrompter returns a Prompter reading from in and writing prompts to out.
func NewTerminalPrompter(in *os.File, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: in, out: out}
}

func (p *TerminalPrompter) PromptSecret(_ context.Context, label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	fd := int(p.in.Fd()) //nolint:gosec
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		// new line after the hidden input
		_, _ = fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}

		return string(secret), nil
	}

	if p.reader == nil {
		p.reader = bufio.NewReader(p.in)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
