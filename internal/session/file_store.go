package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/mathobj/internal/utils"
)

// FileStore persists selections as json files, one per session, so that the
// selection survives between two separate runs of the cli
type FileStore struct {
	Dir string
}

func NewFileStore(cacheDir string) *FileStore {
	return &FileStore{Dir: filepath.Join(cacheDir, "sessions")}
}

func (s *FileStore) path(id string) (string, error) {
	clean, err := sanitizeID(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, clean+".json"), nil
}

func (s *FileStore) Save(_ context.Context, sel Selection) error {
	p, err := s.path(sel.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("saving session to: '%v'\n", p))
	}
	if err := utils.WriteFile(p, &sel); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, id string) (Selection, error) {
	p, err := s.path(id)
	if err != nil {
		return Selection{}, err
	}
	var sel Selection
	err = utils.ReadAndUnmarshal(p, &sel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Selection{ID: id}, nil
		}
		return Selection{}, fmt.Errorf("failed to load session: %w", err)
	}
	return sel, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
