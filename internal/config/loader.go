package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns ~/.opendan/settings.yaml, or settings.yaml in the
// working directory when the home directory is unavailable.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "settings.yaml"
	}
	return filepath.Join(home, ".opendan", "settings.yaml")
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Load reads and parses a settings file on top of the defaults. Absent keys
// keep their default value and an explicit null clears a cap. A key_layouts
// map in the file replaces the default layouts instead of merging with them.
func Load(path string) (Settings, error) {
	s := Default()

	path, err := ExpandPath(path)
	if err != nil {
		return s, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("config: failed to read settings %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return s, fmt.Errorf("config: failed to parse settings %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return s, nil
	}
	if hasKey(doc.Content[0], "key_layouts") {
		s.KeyLayouts = nil
	}
	if err := doc.Decode(&s); err != nil {
		return s, fmt.Errorf("config: failed to parse settings %s: %w", path, err)
	}
	return s.Normalize(), nil
}

// hasKey reports whether a mapping node has the given key.
func hasKey(n *yaml.Node, key string) bool {
	if n.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

// LoadOrCreateDefault loads settings from path (DefaultPath when empty).
//
// A missing file is created with the defaults. An unreadable or invalid file
// is moved aside to <path>.bak and replaced with the defaults. Write failures
// are logged and otherwise ignored: the shell always gets usable settings.
func LoadOrCreateDefault(path string, logger *log.Logger) (Settings, string) {
	if path == "" {
		path = DefaultPath()
	}
	if expanded, err := ExpandPath(path); err == nil {
		path = expanded
	}

	s, err := Load(path)
	if err == nil {
		return s, path
	}

	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("creating default settings", "path", path)
	} else {
		logger.Warn("settings unusable, restoring defaults", "path", path, "error", err)
		if renameErr := os.Rename(path, path+".bak"); renameErr != nil {
			logger.Warn("could not back up settings", "path", path, "error", renameErr)
		}
	}

	s = Default()
	if saveErr := s.Save(path); saveErr != nil {
		logger.Warn("could not write settings", "path", path, "error", saveErr)
	}
	return s, path
}

// Save writes the settings to path as YAML, creating parent directories.
func (s Settings) Save(path string) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: cannot create directory %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: cannot encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: cannot write settings %s: %w", path, err)
	}
	return nil
}
