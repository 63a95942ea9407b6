package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// RootEnv overrides root directory resolution.
const RootEnv = "VTRANS_ROOT"

// Paths is the on-disk layout rooted at one installation directory.
type Paths struct {
	Root      string
	Data      string
	Settings  string
	Params    string
	Languages string
	Logs      string
	Temp      string
}

// NewPaths derives the layout for root.
func NewPaths(root string) Paths {
	data := filepath.Join(root, "data")
	return Paths{
		Root:      root,
		Data:      data,
		Settings:  filepath.Join(data, "cfg.json"),
		Params:    filepath.Join(data, "params.json"),
		Languages: filepath.Join(data, "language"),
		Logs:      filepath.Join(root, "logs"),
		Temp:      filepath.Join(root, "tmp"),
	}
}

// Template returns the path of a template file for the locale.
func (p Paths) Template(slot TemplateSlot, locale string) string {
	return filepath.Join(p.Data, slot.FileName(locale))
}

// ResolveRoot applies flag/env/executable/working-directory fallback rules.
//
// The executable directory is used only when it already carries a data
// directory, so `go run` and test binaries resolve to the working directory.
func ResolveRoot(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return filepath.Abs(explicit)
	}

	if env := strings.TrimSpace(os.Getenv(RootEnv)); env != "" {
		return filepath.Abs(env)
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		if info, err := os.Stat(filepath.Join(dir, "data")); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.New("unable to resolve working directory for root fallback")
	}
	return wd, nil
}

// HomeDir returns the default media directory seeded into last_opendir.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.ToSlash(filepath.Join(home, "Videos", "vtrans"))
}
