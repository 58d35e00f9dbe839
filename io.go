// File: yamlhandler/io.go
package yamlhandler

import (
	"fmt"
	"os"
	"path/filepath"
)

// Save renders the configuration and appends it to the file at path. Missing
// parent directories are created, as is the file itself, but an existing
// file is never truncated: the rendered text is appended to whatever is
// already there. Saving to an existing directory is an error.
func (c *Configuration) Save(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("given path '%s' is a directory", path)
	}

	contents, err := c.Dump()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory '%s': %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open config file '%s': %w", path, err)
	}

	if _, err := file.WriteString(contents); err != nil {
		file.Close()
		return fmt.Errorf("failed to write config file '%s': %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close config file '%s': %w", path, err)
	}
	return nil
}

// SaveBack appends the configuration to the file it was loaded from.
func (c *Configuration) SaveBack() error {
	path, ok := c.FilePath()
	if !ok {
		return fmt.Errorf("configuration was not loaded from a file")
	}
	return c.Save(path)
}
