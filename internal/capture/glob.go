package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/mathobj/internal/host"
	"github.com/baalimago/mathobj/internal/utils"
)

// Glob selects the contents of all files matching pattern, in lexical order,
// separated by a blank line
func Glob(pattern string) host.Selector {
	return host.SelectorFunc(func(_ context.Context) (string, error) {
		return readGlob(pattern)
	})
}

func readGlob(pattern string) (string, error) {
	pattern, err := utils.ReplaceTildeWithHome(pattern)
	if err != nil {
		return "", fmt.Errorf("readGlob, ReplaceTildeWithHome: %w", err)
	}
	files, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("failed to parse glob: %w", err)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("found %d files: %v\n", len(files), files))
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no files found matching: '%v'", pattern)
	}

	contents := make([]string, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			ancli.PrintWarn(fmt.Sprintf("failed to read file: %v\n", err))
			continue
		}
		contents = append(contents, strings.TrimRight(string(data), "\n"))
	}
	return strings.Join(contents, "\n\n"), nil
}
