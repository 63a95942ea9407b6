package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rbright/vtrans/internal/config"
	"github.com/rbright/vtrans/internal/envpath"
	"github.com/rbright/vtrans/internal/i18n"
	"github.com/rbright/vtrans/internal/providers"
)

// Workspace is the bootstrapped state every document command runs against.
// The owning goroutine is its only writer.
type Workspace struct {
	Root     string
	Paths    config.Paths
	Store    *config.Store
	Settings config.LoadedSettings
	Params   config.LoadedParams
	Locale   string
	Bundle   i18n.Bundle
	Lists    providers.Lists
	Factory  *providers.Factory

	notes []string
}

// Open loads the workspace under root in start order: search path, settings,
// locale, bundle, then params.
func Open(root string, logger *slog.Logger, lookup i18n.Lookup) (*Workspace, error) {
	paths := config.NewPaths(root)
	envpath.Augment(root)

	store := config.NewStore(paths, logger)
	settings, err := store.LoadSettings()
	if err != nil {
		return nil, err
	}

	locale := i18n.ResolveLocale(settings.Settings.Lang, lookup)
	bundle, err := i18n.LoadBundle(paths.Languages, locale)
	if err != nil {
		return nil, err
	}
	for _, w := range bundle.Warnings {
		logger.Warn("language bundle warning", "path", bundle.Path, "message", w)
	}

	lists := providers.DeriveLists(settings.Settings)
	// Template files and the locale-dependent defaults follow the bundle
	// actually loaded, not the requested code.
	params, err := store.LoadParams(lists.ParamsOptions(bundle.Code, config.HomeDir()))
	if err != nil {
		return nil, err
	}

	var notes []string
	factory, err := providers.NewFactory(params.Params.Proxy)
	if err != nil {
		logger.Warn("ignoring invalid proxy", "proxy", params.Params.Proxy, "error", err.Error())
		notes = append(notes, "params.json: proxy: "+err.Error()+"; connecting directly")
		factory = &providers.Factory{}
	}

	if err := os.MkdirAll(paths.Temp, 0o755); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}

	logger.Info("workspace open",
		"root", root,
		"locale", locale,
		"bundle", bundle.Code,
		"settings_warnings", len(settings.Warnings),
		"params_warnings", len(params.Warnings),
	)

	return &Workspace{
		Root:     root,
		Paths:    paths,
		Store:    store,
		Settings: settings,
		Params:   params,
		Locale:   locale,
		Bundle:   bundle,
		Lists:    lists,
		Factory:  factory,
		notes:    notes,
	}, nil
}

// Warnings are the load warnings worth showing on the terminal.
func (w *Workspace) Warnings() []string {
	out := make([]string, 0, len(w.Settings.Warnings)+len(w.Params.Warnings)+len(w.Bundle.Warnings))
	for _, warn := range w.Settings.Warnings {
		out = append(out, "cfg.json: "+warn.String())
	}
	for _, warn := range w.Params.Warnings {
		out = append(out, "params.json: "+warn.String())
	}
	for _, warn := range w.Bundle.Warnings {
		out = append(out, "language: "+warn)
	}
	out = append(out, w.notes...)
	if w.Bundle.Fallback() {
		out = append(out, fmt.Sprintf("language: no bundle for %q; using %q", w.Bundle.Requested, w.Bundle.Code))
	}
	return out
}
