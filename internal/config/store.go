package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrConfigLoad marks a settings document that exists but cannot be parsed.
var ErrConfigLoad = errors.New("settings document not found or invalid")

// LoadedSettings is the resolved settings document plus load metadata.
type LoadedSettings struct {
	Settings Settings
	Warnings []Warning
	Path     string
	Created  bool
}

// LoadedParams is the resolved params document plus load metadata.
type LoadedParams struct {
	Params   Params
	Warnings []Warning
	Path     string
	Created  bool
}

// Store reads and writes the documents under one data directory. The owning
// goroutine is the only writer.
type Store struct {
	paths  Paths
	logger *slog.Logger
}

// NewStore builds a store. A nil logger discards output.
func NewStore(paths Paths, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{paths: paths, logger: logger}
}

// Paths returns the layout the store operates on.
func (s *Store) Paths() Paths {
	return s.paths
}

// LoadSettings merges the persisted settings over the defaults, applies the
// model list repairs, and rewrites the full document.
func (s *Store) LoadSettings() (LoadedSettings, error) {
	path := s.paths.Settings
	loaded := LoadedSettings{Path: path}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		loaded.Settings = DefaultSettings()
		loaded.Created = true
		if err := s.SaveSettings(loaded.Settings); err != nil {
			return LoadedSettings{}, err
		}
		return loaded, nil
	}
	if err != nil {
		return LoadedSettings{}, fmt.Errorf("%w: read %s: %v", ErrConfigLoad, path, err)
	}

	cfg, warnings, err := decodeSettings(string(content), DefaultSettings())
	if err != nil {
		return LoadedSettings{}, fmt.Errorf("%w: %s: %v", ErrConfigLoad, path, err)
	}
	warnings = append(warnings, repairSettings(&cfg)...)
	s.logWarnings(path, warnings)

	if err := s.SaveSettings(cfg); err != nil {
		return LoadedSettings{}, err
	}

	loaded.Settings = cfg
	loaded.Warnings = warnings
	return loaded, nil
}

// SaveSettings persists the full settings document.
func (s *Store) SaveSettings(cfg Settings) error {
	if err := writeDocument(s.paths.Settings, cfg.Document()); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// LoadParams merges the persisted params over the locale defaults and
// hydrates the template fields from their sibling files.
//
// Only a missing file is written back. A file that cannot be parsed is left
// untouched and reported as a warning.
func (s *Store) LoadParams(opts ParamsOptions) (LoadedParams, error) {
	path := s.paths.Params
	loaded := LoadedParams{Path: path}
	params := DefaultParams(opts)

	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		loaded.Created = true
	case err != nil:
		loaded.Warnings = append(loaded.Warnings, Warning{Key: "params", Message: "unreadable; using defaults: " + err.Error()})
	default:
		merged, warnings, decodeErr := decodeParams(string(content), params)
		if decodeErr != nil {
			loaded.Warnings = append(loaded.Warnings, Warning{Key: "params", Message: "invalid; using defaults: " + decodeErr.Error()})
			break
		}
		params = merged
		loaded.Warnings = append(loaded.Warnings, warnings...)
	}

	s.hydrateTemplates(&params, opts.Locale)
	s.logWarnings(path, loaded.Warnings)

	if loaded.Created {
		if err := s.SaveParams(params); err != nil {
			return LoadedParams{}, err
		}
	}

	loaded.Params = params
	return loaded, nil
}

// SaveParams persists the full params document.
func (s *Store) SaveParams(params Params) error {
	if err := writeDocument(s.paths.Params, params.Document()); err != nil {
		return fmt.Errorf("save params: %w", err)
	}
	return nil
}

// SaveTemplate writes the template file bound to slot for the locale.
func (s *Store) SaveTemplate(slot TemplateSlot, locale, text string) error {
	path := s.paths.Template(slot, locale)
	if err := writeFileAtomic(path, []byte(text)); err != nil {
		return fmt.Errorf("save template %s: %w", slot.FileName(locale), err)
	}
	return nil
}

// hydrateTemplates overrides template fields with the sibling file content,
// or seeds the file from the in-memory value. Failures only reach the debug log.
func (s *Store) hydrateTemplates(params *Params, locale string) {
	for _, slot := range TemplateSlots {
		path := s.paths.Template(slot, locale)

		text, err := readTemplate(path)
		switch {
		case err == nil:
			if setErr := params.SetString(slot.Key, text); setErr != nil {
				s.logger.Debug("template hydrate failed", "path", path, "error", setErr.Error())
			}
		case errors.Is(err, fs.ErrNotExist):
			current, _ := params.String(slot.Key)
			if writeErr := writeFileAtomic(path, []byte(current)); writeErr != nil {
				s.logger.Debug("template seed failed", "path", path, "error", writeErr.Error())
			}
		default:
			s.logger.Debug("template read failed", "path", path, "error", err.Error())
		}
	}
}

func (s *Store) logWarnings(path string, warnings []Warning) {
	for _, w := range warnings {
		s.logger.Warn("config warning", "path", path, "key", w.Key, "message", w.Message)
	}
}

// writeDocument encodes doc as indented UTF-8 JSON without HTML escaping.
func writeDocument(path string, doc map[string]any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic replaces path through a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+strings.TrimPrefix(filepath.Base(path), ".")+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
