package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rbright/vtrans/internal/audio"
	"github.com/rbright/vtrans/internal/cli"
	"github.com/rbright/vtrans/internal/config"
	"github.com/rbright/vtrans/internal/doctor"
	"github.com/rbright/vtrans/internal/editor"
	"github.com/rbright/vtrans/internal/providers"
	"github.com/rbright/vtrans/internal/tui"
	"github.com/rbright/vtrans/internal/version"
)

func (h *handler) SettingsShow(_ context.Context, format string) error {
	ws, err := h.workspace()
	if err != nil {
		return err
	}
	return writeDocument(h.runner.Stdout, ws.Settings.Settings.Document(), format)
}

func (h *handler) SettingsGet(_ context.Context, key string) error {
	ws, err := h.workspace()
	if err != nil {
		return err
	}
	return writeValue(h.runner.Stdout, ws.Settings.Settings.Document(), key)
}

func (h *handler) SettingsSet(_ context.Context, key, value string) error {
	ws, err := h.workspace()
	if err != nil {
		return err
	}
	next := ws.Settings.Settings
	if err := next.Set(key, value); err != nil {
		return err
	}
	if err := ws.Store.SaveSettings(next); err != nil {
		return err
	}
	ws.Settings.Settings = next
	h.logger().Info("settings key set", "key", key)
	return writeValue(h.runner.Stdout, next.Document(), key)
}

func (h *handler) ParamsShow(_ context.Context, format string) error {
	ws, err := h.workspace()
	if err != nil {
		return err
	}
	return writeDocument(h.runner.Stdout, ws.Params.Params.Document(), format)
}

func (h *handler) ParamsGet(_ context.Context, key string) error {
	ws, err := h.workspace()
	if err != nil {
		return err
	}
	return writeValue(h.runner.Stdout, ws.Params.Params.Document(), key)
}

// ParamsSet also writes the template file of template keys, since the file
// wins over params.json on the next load.
func (h *handler) ParamsSet(_ context.Context, key, value string) error {
	ws, err := h.workspace()
	if err != nil {
		return err
	}
	next := ws.Params.Params.Clone()
	if err := next.Set(key, value); err != nil {
		return err
	}
	if slot, ok := config.TemplateSlotFor(key); ok {
		if err := ws.Store.SaveTemplate(slot, ws.Bundle.Code, value); err != nil {
			return err
		}
	}
	if err := ws.Store.SaveParams(next); err != nil {
		return err
	}
	ws.Params.Params = next
	h.logger().Info("params key set", "key", key)
	return writeValue(h.runner.Stdout, next.Document(), key)
}

func (h *handler) Lists(_ context.Context, name string) error {
	ws, err := h.workspace()
	if err != nil {
		return err
	}
	settings := ws.Settings.Settings

	if name == "" {
		names := make([]string, 0, len(providers.ListKeys))
		for n := range providers.ListKeys {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			key := providers.ListKeys[n]
			fmt.Fprintf(h.runner.Stdout, "%-13s %-18s %s\n", n, key, strings.Join(providers.List(settings, key), ", "))
		}
		return nil
	}

	key, ok := providers.ListKeys[name]
	if !ok {
		if _, isString := settings.String(name); !isString {
			return fmt.Errorf("unknown list %q", name)
		}
		key = name
	}
	for _, entry := range providers.List(settings, key) {
		fmt.Fprintln(h.runner.Stdout, entry)
	}
	return nil
}

func (h *handler) Providers(context.Context) error {
	for _, d := range providers.All() {
		testable := "-"
		if d.Testable() {
			testable = "test"
		}
		fmt.Fprintf(h.runner.Stdout, "%-14s %-12s %-5s %s\n", d.Name, d.Capability, testable, d.Title)
	}
	return nil
}

func (h *handler) Test(ctx context.Context, provider string, opts cli.TestOptions) error {
	d, ok := providers.Lookup(provider)
	if !ok {
		return fmt.Errorf("unknown provider %q", provider)
	}
	ws, err := h.workspace()
	if err != nil {
		return err
	}

	ed, err := h.newEditor(ws, d)
	if err != nil {
		return err
	}
	ed.SetSampleText(opts.Text)

	future, err := ed.Test(ctx)
	if err != nil {
		return err
	}
	result, err := future.Wait(ctx)
	if err != nil {
		return err
	}
	message, passed := ed.Finish(result)
	if !passed {
		return fmt.Errorf("%s test failed: %s", d.Name, message)
	}
	fmt.Fprintln(h.runner.Stdout, message)

	if clip := result.Value.AudioFile; clip != "" {
		fmt.Fprintf(h.runner.Stdout, "audio: %s\n", clip)
		if opts.Play {
			return audio.PlayWAV(ctx, clip)
		}
	}
	return nil
}

func (h *handler) newEditor(ws *Workspace, d providers.Descriptor) (*editor.Editor, error) {
	return editor.New(editor.Options{
		Store:      ws.Store,
		Descriptor: d,
		Params:     &ws.Params.Params,
		Settings:   &ws.Settings.Settings,
		Locale:     ws.Bundle.Code,
		Factory:    ws.Factory,
		AudioDir:   ws.Paths.Temp,
		Logger:     h.logger(),
	})
}

func (h *handler) Edit(ctx context.Context, provider string) error {
	if provider != "" {
		if _, ok := providers.Lookup(provider); !ok {
			return fmt.Errorf("unknown provider %q", provider)
		}
	}
	ws, err := h.workspace()
	if err != nil {
		return err
	}
	edit := h.runner.Edit
	if edit == nil {
		edit = runEditor
	}
	return edit(ctx, ws, provider, h.logger())
}

func runEditor(ctx context.Context, ws *Workspace, provider string, logger *slog.Logger) error {
	return tui.Run(ctx, tui.Config{
		Store:    ws.Store,
		Params:   &ws.Params.Params,
		Settings: &ws.Settings.Settings,
		Locale:   ws.Bundle.Code,
		Bundle:   ws.Bundle,
		Factory:  ws.Factory,
		AudioDir: ws.Paths.Temp,
		Logger:   logger,
		Provider: provider,
		Play:     audio.PlayWAV,
	})
}

func (h *handler) Locale(context.Context) error {
	ws, err := h.workspace()
	if err != nil {
		return err
	}
	fmt.Fprintf(h.runner.Stdout, "locale: %s\n", ws.Locale)
	fmt.Fprintf(h.runner.Stdout, "bundle: %s (%s)\n", ws.Bundle.Code, ws.Bundle.Path)
	if ws.Bundle.Fallback() {
		fmt.Fprintf(h.runner.Stdout, "fallback: no bundle for %q\n", ws.Bundle.Requested)
	}
	fmt.Fprintf(h.runner.Stdout, "languages: %d\n", len(ws.Bundle.Languages))
	return nil
}

func (h *handler) Doctor(ctx context.Context) error {
	ws, err := h.workspace()
	if err != nil {
		return err
	}
	report := doctor.Run(ctx, doctor.Input{
		Settings: ws.Settings,
		Params:   ws.Params,
		Bundle:   ws.Bundle,
		Client:   ws.Factory.Client,
	})
	fmt.Fprintln(h.runner.Stdout, report.String())
	if !report.OK() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func (h *handler) Devices(ctx context.Context) error {
	sinks, err := audio.ListSinks(ctx)
	if err != nil {
		return err
	}
	if len(sinks) == 0 {
		fmt.Fprintln(h.runner.Stdout, "no audio output devices found")
		return &cli.ExitError{Code: 1}
	}

	for _, sink := range sinks {
		defaultMark := " "
		if sink.Default {
			defaultMark = "*"
		}
		availability := "yes"
		if !sink.Available {
			availability = "no"
		}
		muted := "no"
		if sink.Muted {
			muted = "yes"
		}
		fmt.Fprintf(
			h.runner.Stdout,
			"%s id=%s | description=%q | state=%s | available=%s | muted=%s\n",
			defaultMark,
			sink.ID,
			sink.Description,
			sink.State,
			availability,
			muted,
		)
	}
	return nil
}

func (h *handler) Version(context.Context) error {
	fmt.Fprintln(h.runner.Stdout, version.String())
	return nil
}

// writeDocument prints a flat document. YAML goes through a JSON round trip
// so carried-through raw values render as values rather than bytes.
func writeDocument(w io.Writer, doc map[string]any, format string) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	if format != "yaml" {
		_, err := w.Write(buf.Bytes())
		return err
	}

	var plain map[string]any
	if err := json.Unmarshal(buf.Bytes(), &plain); err != nil {
		return err
	}
	out, err := yaml.Marshal(plain)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// writeValue prints one key: strings verbatim, everything else as JSON.
func writeValue(w io.Writer, doc map[string]any, key string) error {
	value, ok := doc[key]
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}
	if s, isString := value.(string); isString {
		_, err := fmt.Fprintln(w, s)
		return err
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
