//go:build windows

package render

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// lookupCompiler checks the search path first, then the default MiKTeX and TeX Live
// install locations, since neither installer reliably updates PATH for running shells.
func lookupCompiler(name string) (string, error) {
	exe := name
	if filepath.Ext(exe) == "" {
		exe += ".exe"
	}
	if p, err := exec.LookPath(exe); err == nil {
		return p, nil
	}
	for _, dir := range installDirs() {
		candidate := filepath.Join(dir, exe)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: '%v' is not on PATH nor in any MiKTeX or TeX Live install dir", ErrToolchainNotFound, exe)
}

func installDirs() []string {
	var dirs []string
	if pf := os.Getenv("ProgramFiles"); pf != "" {
		dirs = append(dirs, filepath.Join(pf, "MiKTeX", "miktex", "bin", "x64"))
	}
	if lad := os.Getenv("LOCALAPPDATA"); lad != "" {
		dirs = append(dirs, filepath.Join(lad, "Programs", "MiKTeX", "miktex", "bin", "x64"))
	}
	texLive, _ := filepath.Glob(`C:\texlive\*\bin\windows`)
	dirs = append(dirs, texLive...)
	return dirs
}
