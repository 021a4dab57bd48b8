package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"iftar/internal/modules/tracker/domain"
	trackerout "iftar/internal/modules/tracker/port/out"
	apperrors "iftar/internal/platform/errors"
)

// FileSnapshotStore keeps the whole state under one well-known path.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) trackerout.SnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Load(_ context.Context) (domain.AppState, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		// Missing and unreadable snapshots both degrade to first-run.
		return domain.AppState{}, apperrors.ErrNoSavedState
	}
	state := domain.AppState{}
	if err := json.Unmarshal(payload, &state); err != nil {
		// Corrupt snapshots are discarded rather than surfaced.
		return domain.AppState{}, apperrors.ErrNoSavedState
	}
	return state, nil
}

func (s *FileSnapshotStore) Save(_ context.Context, state domain.AppState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
