package intake

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned when input ends before a required value was given.
	ErrEmptyInput = errors.New("input ended before a value was entered")
	// ErrEmptyJobDescription is returned when the job description is blank.
	ErrEmptyJobDescription = errors.New("job description cannot be empty")
)

// Prompter gathers the interactive inputs for a run.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) (p *Prompter) {
	p = &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	return p
}

// Required asks for a single line until a non-blank answer is given.
func (p *Prompter) Required(label, retryMessage string) (value string, err error) {
	for {
		fmt.Fprintf(p.out, "Enter %s: ", label)

		var line string
		line, err = p.in.ReadString('\n')
		value = strings.TrimSpace(line)
		if value != "" {
			err = nil
			return value, err
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.out)
				err = errors.Wrapf(ErrEmptyInput, "%s", label)
				return value, err
			}
			err = errors.Wrapf(err, "failed to read %s", label)
			return value, err
		}

		fmt.Fprintf(p.out, "❌ %s\n", retryMessage)
	}
}

// JobDescription reads a multi-line job description up to end of input.
func (p *Prompter) JobDescription() (jd string, err error) {
	fmt.Fprintln(p.out, "\nPlease paste the job description:")
	fmt.Fprintln(p.out, "(Press Ctrl+D on Unix/Mac, or Ctrl+Z then Enter on Windows, when finished)")
	fmt.Fprintln(p.out, strings.Repeat("=", 50))

	scanner := bufio.NewScanner(p.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if scanner.Err() != nil {
		err = errors.Wrap(scanner.Err(), "failed to read job description")
		return jd, err
	}

	jd = strings.Join(lines, "\n")
	if strings.TrimSpace(jd) == "" {
		err = ErrEmptyJobDescription
		return jd, err
	}

	return jd, err
}
