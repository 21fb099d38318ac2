package render

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/mathobj/internal/utils"
)

// Output describes where artifacts are kept once the renderer workspace is gone
type Output struct {
	Dir    string `json:"dir"`
	Prefix string `json:"prefix"`
}

// Save copies the artifact into out.Dir as <prefix>_<random>.pdf. If out.Dir is missing or
// not writable, the OS temp dir is used instead. Other errors are returned as is.
func Save(a Artifact, out Output) (string, error) {
	src, err := os.Open(a.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %w", err)
	}
	defer src.Close()

	prefix := out.Prefix
	if prefix == "" {
		prefix = "mathobj"
	}
	name := fmt.Sprintf("%v_%v%v", prefix, utils.RandomPrefix(), ArtifactExt)
	dir, err := utils.ReplaceTildeWithHome(out.Dir)
	if err != nil {
		return "", fmt.Errorf("failed to expand output dir: %w", err)
	}
	outFile := filepath.Join(dir, name)
	err = copyTo(outFile, src)
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		ancli.PrintWarn(fmt.Sprintf("failed to write file: '%v', attempting tmp file...\n", err))
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("failed to rewind artifact: %w", err)
		}
		outFile = filepath.Join(os.TempDir(), name)
		err = copyTo(outFile, src)
	}
	if err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return outFile, nil
}

func copyTo(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	_, err = io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
