package wizard

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads interactive answers line by line. Output goes through a
// writer so tests can capture prompts without a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// YesNo asks a yes/no question. Empty input takes the default.
func (p *Prompter) YesNo(question string, def bool) (bool, error) {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s: ", question, suffix)

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Line asks a free-text question and returns the trimmed answer. Empty
// input returns the default.
func (p *Prompter) Line(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Choice asks the user to pick one option by number, returning its index.
// Empty input picks the first option.
func (p *Prompter) Choice(question string, options []string) (int, error) {
	fmt.Fprintln(p.out, question)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(p.out, "Choice [1]: ")

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return 0, nil
	}

	var n int
	if _, err := fmt.Sscanf(answer, "%d", &n); err != nil || n < 1 || n > len(options) {
		return 0, fmt.Errorf("invalid choice: %s", answer)
	}
	return n - 1, nil
}
