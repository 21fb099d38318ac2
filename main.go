package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/mathobj/internal"
	"github.com/baalimago/mathobj/internal/utils"
)

const usage = `mathobj - describe (math)ematical (obj)ects found in text

Capture a piece of text, point at an object within it and get a PDF explaining
what the text says about the object.

Prerequisites:
  - Set 'chatGPT.apiKey' in mathobjConfig.json, or the OPENAI_API_KEY environment variable
  - pdflatex on PATH, from any TeX distribution (TeX Live, MiKTeX, MacTeX)
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: mathobj [flags] <command>

Flags:
  -s, -session string          Set the session to capture into and describe from. (default '%v')
  -cm, -chat-model string      Set the chat model to use. (default is found in mathobjConfig.json)
  -f, -file string             Capture the contents of the files matching this glob.
  -u, -url string              Capture the visible text of this web page.
  -I, -replace string          Set the string to replace with stdin. (default '%v')
  -i bool                      Set to true to replace '{}' with stdin. This is overwritten by -I and -replace. (default %v)
  -r, -raw bool                Set to true to print the LaTeX source instead of rendering it. (default %v)
  -od, -out-dir string         Set the directory where the rendered PDF is saved. (default is found in mathobjConfig.json, else the temp dir)
                               Saved PDFs are kept after exit, including those in the temp dir.
  -op, -out-prefix string      Set the prefix of the saved PDF. (default is found in mathobjConfig.json)
  -no-open bool                Set to true to skip opening the rendered PDF. (default %v)

Commands:
  h|help                        Display this help message
  v|version                     Display the version
  s|select <text>               Capture text as context for later descriptions
  d|describe <object>           Describe the object using the captured text, then open the PDF
  x|clear                       Forget the captured text of the session
  c|commands                    List the editor command ids
  nvim                          Run as a Neovim remote plugin
  nvim manifest [host]          Print the Neovim plugin manifest

Config:
  %v

Examples:
  - mathobj s "In quantum computing, the density matrix ρ describes a mixed state..."
  - mathobj d "Tr(ρ²)"
  - mathobj -f "notes/*.tex" s && mathobj d "the group G"
  - cat paper.txt | mathobj s && mathobj -r d "Hilbert space" > hilbert.tex
  - mathobj -u https://en.wikipedia.org/wiki/Density_matrix s && mathobj -od ~/Documents d purity
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ancli.SetupSlog()
	if misc.Truthy(os.Getenv("DEBUG_CPU")) {
		f, err := os.Create("cpu_profile.prof")
		if err != nil {
			ancli.PrintErr(fmt.Sprintf("failed to create profiler file: %v\n", err))
		} else {
			defer f.Close()
			err = pprof.StartCPUProfile(f)
			if err != nil {
				ancli.PrintErr(fmt.Sprintf("failed to start profiler : %v\n", err))
			}
			defer pprof.StopCPUProfile()
		}
	}

	configDir, err := utils.GetConfigDir()
	if err != nil {
		configDir = fmt.Sprintf("failed to find config dir: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runnable, err := internal.Setup(fmt.Sprintf(usage, "default", "", false, false, false, configDir), args)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			return 0
		}
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		return 1
	}
	go func() { shutdown.Monitor(cancel) }()
	err = runnable.Run(ctx)
	if err != nil {
		// The user has already been notified by the host
		if misc.Truthy(os.Getenv("DEBUG")) {
			ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		}
		return 1
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
	return 0
}
