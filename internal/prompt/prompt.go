// Package prompt implements validated console prompts as a small state machine.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// State is the position of a prompt in its validation cycle.
type State int

const (
	// StateAwaiting means the question has not been answered yet.
	StateAwaiting State = iota
	// StateValid means the last answer was accepted.
	StateValid
	// StateInvalid means the last answer was rejected and the prompt repeats.
	StateInvalid
)

// RetryMessage is printed after a rejected answer.
const RetryMessage = "Please enter a valid value! Please try again: "

// Validator maps raw input to a canonical value.
type Validator func(string) (string, bool)

// Prompt asks one question until the validator accepts an answer.
type Prompt struct {
	question string
	validate Validator
	state    State
	value    string
}

// New creates a prompt in the awaiting state.
func New(question string, validate Validator) *Prompt {
	return &Prompt{question: question, validate: validate}
}

// State returns the current state.
func (p *Prompt) State() State {
	return p.state
}

// Value returns the accepted value; empty unless the state is valid.
func (p *Prompt) Value() string {
	return p.value
}

// Message returns the text to show before reading the next answer.
func (p *Prompt) Message() string {
	if p.state == StateInvalid {
		return RetryMessage
	}
	return p.question
}

// Feed applies one answer and returns the new state. A valid prompt ignores
// further input.
func (p *Prompt) Feed(input string) State {
	if p.state == StateValid {
		return p.state
	}
	value, ok := p.validate(input)
	if !ok {
		p.state = StateInvalid
		return p.state
	}
	p.value = value
	p.state = StateValid
	return p.state
}

// Console runs prompts over a reader and writer.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole wraps r and w.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewReader(r), out: w}
}

// Out returns the writer prompts are printed to.
func (c *Console) Out() io.Writer {
	return c.out
}

// Ask repeats p until it is valid. It returns io.EOF when input ends first.
func (c *Console) Ask(p *Prompt) (string, error) {
	for p.State() != StateValid {
		if _, err := fmt.Fprint(c.out, p.Message()); err != nil {
			return "", err
		}
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		p.Feed(line)
	}
	return p.Value(), nil
}

// Choose asks question until validate accepts the answer.
func (c *Console) Choose(question string, validate Validator) (string, error) {
	return c.Ask(New(question, validate))
}

// Confirm asks a yes/no question. Only "yes", in any case, is affirmative.
// End of input counts as "no" and is reported as io.EOF.
func (c *Console) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprint(c.out, question); err != nil {
		return false, err
	}
	line, err := c.readLine()
	if err != nil {
		return false, err
	}
	return IsYes(line), nil
}

// IsYes reports whether an answer is the affirmative "yes".
func IsYes(answer string) bool {
	return model.Normalize(answer) == "yes"
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
