// Package prompt implements the console questions usl asks: yes/no
// confirmations and numbered multi-selection.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Prompter reads answers from in and writes questions to out. A pending
// read is abandoned when ctx is cancelled.
type Prompter struct {
	ctx context.Context
	in  *bufio.Reader
	out io.Writer

	pending chan answer // read still in flight
}

type answer struct {
	line string
	err  error
}

// New returns a Prompter on the given streams.
func New(ctx context.Context, in io.Reader, out io.Writer) *Prompter {
	return &Prompter{ctx: ctx, in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question until it gets y, yes, n or no (any case).
// End of input counts as no.
func (p *Prompter) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s (y/n): ", question)

		line, err := p.readLine()
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(p.out)
			return false, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("reading answer: %w", err)
		}

		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// SelectionError reports input to SelectMany that is not a list of item
// numbers.
type SelectionError struct {
	Input string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid input %q: enter numbers such as '1 3 5' or '1,2,3'", e.Input)
}

var separators = regexp.MustCompile(`[,\s]+`)

// SelectMany prints items as a numbered list and returns the zero-based
// indexes the user picked, in the order given. Blank input returns nil,
// meaning cancel. Numbers outside the list are ignored; input that selects
// nothing valid is a *SelectionError.
func (p *Prompter) SelectMany(items []string) ([]int, error) {
	for i, item := range items {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, item)
	}
	fmt.Fprint(p.out, "Enter numbers to add (e.g., 1 3 5 or 1,2,3), or leave blank to cancel: ")

	line, err := p.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading selection: %w", err)
	}
	if line == "" {
		return nil, nil
	}

	var picked []int
	seen := make(map[int]bool)
	for _, tok := range separators.Split(line, -1) {
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &SelectionError{Input: line}
		}
		idx := n - 1
		if idx < 0 || idx >= len(items) || seen[idx] {
			continue
		}
		seen[idx] = true
		picked = append(picked, idx)
	}

	if len(picked) == 0 {
		return nil, &SelectionError{Input: line}
	}
	return picked, nil
}

// readLine returns the next input line. The read runs in a goroutine so a
// cancelled ctx can interrupt it; its answer is kept in p.pending and the
// next call picks it up instead of starting a second reader.
func (p *Prompter) readLine() (string, error) {
	if err := p.ctx.Err(); err != nil {
		return "", err
	}
	if p.pending == nil {
		ch := make(chan answer, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- answer{strings.TrimSpace(line), err}
		}()
		p.pending = ch
	}

	select {
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	case a := <-p.pending:
		p.pending = nil
		return a.line, a.err
	}
}
