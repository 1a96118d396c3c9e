// Package config manages wdkit configuration and filesystem paths.
//
// The default root is ~/.wdkit/ and holds config.yaml. The root can be moved
// with WDKIT_ROOT, and individual settings can be overridden with WDKIT_*
// environment variables (see settings.go).
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by wdkit.
type Paths struct {
	// Root is the base directory for all wdkit data (default: ~/.wdkit)
	Root string

	// Config is the path to the settings file
	Config string
}

// DefaultPaths returns the default paths for wdkit.
// Paths can be overridden with environment variables:
// - WDKIT_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("WDKIT_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".wdkit")
	}

	return NewPaths(root), nil
}

// NewPaths returns the paths under root.
func NewPaths(root string) *Paths {
	return &Paths{
		Root:   root,
		Config: filepath.Join(root, "config.yaml"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.Root, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.Root, err)
	}
	return nil
}
