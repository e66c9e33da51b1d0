// Package console is the local operator surface: commands read line by line
// from a terminal or serial port, and the buffered sink trace lines go to.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Op is an operator command.
type Op int

const (
	OpUnknown Op = iota
	OpDump
	OpTrace
	OpHelp
)

// Command is one parsed input line.
type Command struct {
	Op  Op
	Arg string // message text for OpTrace
	Raw string
}

// Help lists the accepted commands.
const Help = `commands:
  debug? | dump        print all debug variables
  trace <text>         emit a trace line
  help                 show this text
`

// Parse parses one input line. Blank lines report false. Command words are
// case-insensitive; SCPI-style long forms are accepted.
func Parse(line string) (Command, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, false
	}

	word, arg, _ := strings.Cut(line, " ")
	cmd := Command{Raw: line}
	switch strings.ToLower(word) {
	case "debug?", "debug:variables?", "dump":
		cmd.Op = OpDump
	case "trace", "debug:trace":
		cmd.Op = OpTrace
		cmd.Arg = strings.TrimSpace(arg)
	case "help", "?":
		cmd.Op = OpHelp
	}
	return cmd, true
}

// Read parses lines from r and sends them on out until r is exhausted or ctx
// is done. It returns nil at EOF.
func Read(ctx context.Context, r io.Reader, out chan<- Command) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		cmd, ok := Parse(sc.Text())
		if !ok {
			continue
		}
		select {
		case out <- cmd:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

// NewOutput returns a buffered sink writing to w and, if non-nil, to tee.
// Callers Flush after each complete line.
func NewOutput(w io.Writer, tee io.Writer) *bufio.Writer {
	if tee != nil {
		w = io.MultiWriter(w, tee)
	}
	return bufio.NewWriter(w)
}
