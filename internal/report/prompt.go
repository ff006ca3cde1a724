package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// StdinGate asks y/n questions on the terminal. An empty answer takes the
// default (yes); unrecognized input re-asks.
type StdinGate struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewStdinGate creates a gate reading answers from in and writing prompts to
// out.
func NewStdinGate(in io.Reader, out io.Writer) *StdinGate {
	return &StdinGate{In: in, Out: out, reader: bufio.NewReader(in)}
}

var answers = map[string]bool{
	"yes": true, "ye": true, "y": true,
	"no": false, "n": false,
}

// Confirm prompts with question and returns the operator's answer. It
// returns an error only when input is closed before an answer arrives.
func (g *StdinGate) Confirm(question string) (bool, error) {
	for {
		fmt.Fprint(g.Out, question+" [Y/n] ")
		line, err := g.reader.ReadString('\n')
		if err != nil && line == "" {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
		choice := strings.ToLower(strings.TrimSpace(line))
		if choice == "" {
			return true, nil
		}
		if answer, ok := answers[choice]; ok {
			return answer, nil
		}
		fmt.Fprintln(g.Out, "Please respond with 'yes' or 'no' (or 'y' or 'n').")
		if err != nil {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
	}
}
