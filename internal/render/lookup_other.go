//go:build !windows

package render

import (
	"fmt"
	"os/exec"
)

func lookupCompiler(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrToolchainNotFound, err)
	}
	return p, nil
}
