// Package capture provides the selectors used when running from the command line:
// text given as arguments, piped in on stdin, read from files or scraped from a web page.
package capture

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/mathobj/internal/host"
)

// Args selects the arguments, joined by space
func Args(args []string) host.Selector {
	return host.StaticSelector(strings.Join(args, " "))
}

// Stdin selects the arguments, combined with whatever is piped into the process.
// If there are no arguments, stdin becomes the selection. If there are, all
// stdinReplace tokens within them are substituted with the data in stdin.
func Stdin(stdinReplace string, args []string) host.Selector {
	return stdinSelector{
		stdinReplace: stdinReplace,
		args:         args,
		in:           os.Stdin,
		hasPipe:      stdinHasPipe,
	}
}

type stdinSelector struct {
	stdinReplace string
	args         []string
	in           io.Reader
	hasPipe      func() bool
}

func stdinHasPipe() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeNamedPipe != 0
}

func (s stdinSelector) ActiveSelection(_ context.Context) (string, error) {
	debug := misc.Truthy(os.Getenv("DEBUG"))
	args := append([]string(nil), s.args...)
	if !s.hasPipe() {
		return strings.Join(args, " "), nil
	}

	inputData, err := io.ReadAll(s.in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	pipeIn := string(inputData)
	if len(args) == 0 {
		return pipeIn, nil
	}

	if s.stdinReplace != "" {
		if debug {
			ancli.PrintOK(fmt.Sprintf("attempting to replace: '%v' with stdin\n", s.stdinReplace))
		}
		for i, arg := range args {
			if strings.Contains(arg, s.stdinReplace) {
				args[i] = strings.ReplaceAll(arg, s.stdinReplace, pipeIn)
			}
		}
	}
	if debug {
		ancli.PrintOK(fmt.Sprintf("args: %v\n", args))
	}
	return strings.Join(args, " "), nil
}
