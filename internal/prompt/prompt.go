// Package prompt implements the interactive question/answer flow used by the
// generate command. Every question echoes its default in brackets; pressing
// enter accepts the default.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads answers line by line from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *Prompter) read() string {
	line, _ := p.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// Ask asks for a value with a default; empty input takes the default.
func (p *Prompter) Ask(label, def string) string {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s [default: '']: ", label)
	}
	answer := p.read()
	if answer == "" {
		return def
	}
	return answer
}

// Required asks for a mandatory value; empty input is an error naming the
// missing field.
func (p *Prompter) Required(label, field string) (string, error) {
	fmt.Fprintf(p.out, "%s (required): ", label)
	answer := p.read()
	if answer == "" {
		return "", fmt.Errorf("a %s is required", field)
	}
	return answer, nil
}

// Int asks for an integer with a default.
func (p *Prompter) Int(label string, def int64) (int64, error) {
	answer := p.Ask(label, strconv.FormatInt(def, 10))
	n, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", label, answer)
	}
	return n, nil
}

// Float asks for a number with a default.
func (p *Prompter) Float(label string, def float64) (float64, error) {
	answer := p.Ask(label, strconv.FormatFloat(def, 'g', -1, 64))
	f, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", label, answer)
	}
	return f, nil
}

// FloatInRange asks for a number with a default and range-checks it
// inclusively.
func (p *Prompter) FloatInRange(label string, def, min, max float64) (float64, error) {
	f, err := p.Float(label, def)
	if err != nil {
		return 0, err
	}
	if f < min || f > max {
		return 0, fmt.Errorf("%s must be between %g and %g, got %g", label, min, max, f)
	}
	return f, nil
}
