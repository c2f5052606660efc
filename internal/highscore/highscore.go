// Package highscore persists the single high-score value between runs.
package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type record struct {
	HighScore int `toml:"high_score"`
}

// Load returns the stored high score, or 0 when path is empty or absent.
func Load(path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}
	var r record
	if err := toml.Unmarshal(data, &r); err != nil {
		return 0, fmt.Errorf("parse high score %s: %w", path, err)
	}
	return r.HighScore, nil
}

// Save writes score to path through a temp file so a crash never truncates it.
func Save(path string, score int) error {
	if path == "" {
		return nil
	}
	data, err := toml.Marshal(record{HighScore: score})
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".highscore-*")
	if err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save high score: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
