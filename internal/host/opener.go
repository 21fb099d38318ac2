package host

import (
	"fmt"
	"os/exec"
	"runtime"
)

func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

// OpenFile using the operating system's default application for it
func OpenFile(path string) error {
	name, args := openCommand(runtime.GOOS, path)
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to run '%v': %w, output: %v", name, err, string(out))
	}
	return nil
}
