package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	DataDir   string
	StatePath string
	DBPath    string
}

// New resolves the data directory. An empty dataDir defaults to
// ~/.iftar so the app works with no flags at all.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".iftar")
	}
	return Config{
		DataDir:   dataDir,
		StatePath: filepath.Join(dataDir, "state.json"),
		DBPath:    filepath.Join(dataDir, "iftar.db"),
	}, nil
}
