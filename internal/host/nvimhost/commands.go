package nvimhost

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/baalimago/mathobj/internal/host"
	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"
)

const (
	CmdSelect   = "MathObjSelect"
	CmdDescribe = "MathObjDescribe"
)

type visualSelection struct {
	Buffer int    `eval:"bufnr('%')"`
	Start  []int  `eval:"getpos(\"'<\")"`
	End    []int  `eval:"getpos(\"'>\")"`
	Mode   string `eval:"visualmode()"`
}

// Register the editor commands on p, dispatching to the commands in registry. Every
// command runs within the single session sessionID. The commands accept a range so that
// they may be called straight from visual mode, the range itself is ignored in favour of
// the '< and '> marks.
func Register(ctx context.Context, p *plugin.Plugin, registry *host.Registry, sessionID string) {
	p.HandleCommand(&plugin.CommandOptions{Name: CmdSelect, Range: ".", Eval: "*"}, func(_ []int, eval *visualSelection) error {
		inv, err := invocation(p.Nvim, eval, sessionID)
		if err != nil {
			return err
		}
		err = registry.Invoke(ctx, host.CmdCaptureSelection, inv)
		if err != nil {
			log.Printf("capture failed: %v", err)
		}
		return nil
	})

	p.HandleCommand(&plugin.CommandOptions{Name: CmdDescribe, Range: ".", Eval: "*"}, func(_ []int, eval *visualSelection) error {
		inv, err := invocation(p.Nvim, eval, sessionID)
		if err != nil {
			return err
		}
		// Rendering takes seconds, the editor may not be blocked meanwhile
		go func() {
			err := registry.Invoke(ctx, host.CmdDescribeObject, inv)
			if err != nil {
				log.Printf("describe failed: %v", err)
			}
		}()
		return nil
	})
}

// invocation reads the visual selection right away, so that later edits in the
// buffer don't affect what's described
func invocation(v *nvim.Nvim, eval *visualSelection, sessionID string) (host.Invocation, error) {
	inv := host.Invocation{SessionID: sessionID}
	if eval == nil || len(eval.Start) < 3 || len(eval.End) < 3 || eval.Start[1] == 0 {
		inv.Selector = host.StaticSelector("")
		return inv, nil
	}
	buf := nvim.Buffer(eval.Buffer)
	startLine, endLine := eval.Start[1], eval.End[1]
	if startLine > endLine {
		startLine, endLine = endLine, startLine
	}
	lines, err := v.BufferLines(buf, startLine-1, endLine, false)
	if err != nil {
		return inv, fmt.Errorf("failed to read buffer lines: %w", err)
	}
	inv.Selector = host.StaticSelector(selectedText(lines, eval.Start[2], eval.End[2], eval.Mode))
	name, err := v.BufferName(buf)
	if err != nil || name == "" {
		name = "buffer " + strconv.Itoa(eval.Buffer)
	}
	inv.Source = name
	return inv, nil
}

// selectedText cuts the selection out of the selected lines. Columns are 1-based byte
// offsets as returned by getpos(), the end column being inclusive.
func selectedText(lines [][]byte, startCol, endCol int, mode string) string {
	if len(lines) == 0 {
		return ""
	}
	if mode != "v" && startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		line := string(l)
		switch mode {
		case "V":
			out[i] = line
		case "v":
			from, to := 0, len(line)
			if i == 0 {
				from = startCol - 1
			}
			if i == len(lines)-1 {
				to = runeEnd(line, endCol)
			}
			out[i] = cut(line, from, to)
		default:
			// blockwise, ctrl-v
			out[i] = cut(line, startCol-1, runeEnd(line, endCol))
		}
	}
	return strings.Join(out, "\n")
}

// runeEnd returns the byte offset just past the rune starting at 1-based col
func runeEnd(line string, col int) int {
	if col <= 0 {
		return 0
	}
	if col >= len(line) {
		return len(line)
	}
	_, size := utf8.DecodeRuneInString(line[col-1:])
	return col - 1 + size
}

func cut(line string, from, to int) string {
	from = max(from, 0)
	to = min(to, len(line))
	if from >= to {
		return ""
	}
	return line[from:to]
}
