// Package editor is the generic provider settings editor. One Editor edits
// one provider, driven entirely by its descriptor.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rbright/vtrans/internal/config"
	"github.com/rbright/vtrans/internal/fsm"
	"github.com/rbright/vtrans/internal/providers"
	"github.com/rbright/vtrans/internal/task"
)

// Store is the persistence subset the editor writes through.
type Store interface {
	SaveSettings(config.Settings) error
	SaveParams(config.Params) error
	SaveTemplate(slot config.TemplateSlot, locale, text string) error
}

// Options wires one editor.
type Options struct {
	Store      Store
	Descriptor providers.Descriptor
	// Params and Settings are the owner's documents. The editor mutates them
	// only from Save and SetModels, on the owning goroutine.
	Params   *config.Params
	Settings *config.Settings
	Locale   string
	Factory  *providers.Factory
	// AudioDir receives synthesis test clips.
	AudioDir string
	Logger   *slog.Logger
}

// Editor holds a draft of one provider's fields.
type Editor struct {
	store    Store
	desc     providers.Descriptor
	params   *config.Params
	settings *config.Settings
	locale   string
	factory  *providers.Factory
	audioDir string
	logger   *slog.Logger

	draft      providers.Values
	sampleText string
	guard      task.Guard

	mu    sync.RWMutex
	state fsm.State
}

// New snapshots the provider fields into a draft.
func New(opts Options) (*Editor, error) {
	if opts.Store == nil || opts.Params == nil || opts.Settings == nil {
		return nil, fmt.Errorf("editor for %s: store, params, and settings are required", opts.Descriptor.Name)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Factory == nil {
		opts.Factory = &providers.Factory{}
	}

	return &Editor{
		store:    opts.Store,
		desc:     opts.Descriptor,
		params:   opts.Params,
		settings: opts.Settings,
		locale:   opts.Locale,
		factory:  opts.Factory,
		audioDir: opts.AudioDir,
		logger:   opts.Logger,
		draft:    providers.ValuesFrom(opts.Descriptor, *opts.Params),
		state:    fsm.StateIdle,
	}, nil
}

// Descriptor returns the provider being edited.
func (e *Editor) Descriptor() providers.Descriptor {
	return e.desc
}

// State returns the current lifecycle state.
func (e *Editor) State() fsm.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Editor) transition(event fsm.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fsm.Transition(e.state, event)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

// Value returns the draft value of key.
func (e *Editor) Value(key string) string {
	return e.draft[key]
}

// Values returns a copy of the draft.
func (e *Editor) Values() providers.Values {
	return e.draft.Clone()
}

// Set edits one draft field.
func (e *Editor) Set(key, value string) error {
	if _, ok := e.desc.Field(key); !ok {
		return fmt.Errorf("%s has no field %q", e.desc.Name, key)
	}
	e.draft[key] = value
	return nil
}

// ModelsText returns the raw model list setting.
func (e *Editor) ModelsText() string {
	if e.desc.ModelList == "" {
		return ""
	}
	raw, _ := e.settings.String(e.desc.ModelList)
	return raw
}

// Models returns the model pick-list.
func (e *Editor) Models() []string {
	if e.desc.ModelList == "" {
		return nil
	}
	return providers.List(*e.settings, e.desc.ModelList)
}

// SetModels replaces the model list setting and persists settings.
func (e *Editor) SetModels(raw string) error {
	if e.desc.ModelList == "" {
		return fmt.Errorf("%s has no model list", e.desc.Name)
	}
	normalized := strings.TrimRight(strings.ReplaceAll(strings.TrimSpace(raw), "，", ","), ",")
	if err := e.settings.SetString(e.desc.ModelList, normalized); err != nil {
		return err
	}
	return e.store.SaveSettings(*e.settings)
}

// SetSampleText replaces the fixed sample text of later tests. Empty
// restores the sample.
func (e *Editor) SetSampleText(text string) {
	e.sampleText = text
}

// TestLabel is the text of the test control for the current state.
func (e *Editor) TestLabel() string {
	zh := e.locale == "zh"
	if e.State() == fsm.StateTesting {
		if zh {
			return "测试中请稍等..."
		}
		return "Testing..."
	}
	if zh {
		return "测试"
	}
	return "Test"
}

// Test validates the draft and starts one worker. The worker captures its
// request now; later draft edits do not reach it. A validation failure
// returns before any worker exists.
func (e *Editor) Test(ctx context.Context) (*task.Future[providers.Outcome], error) {
	probe, err := providers.NewProbe(e.factory, e.desc, e.locale, e.draft, e.audioFile())
	if err != nil {
		return nil, err
	}
	if text := strings.TrimSpace(e.sampleText); text != "" {
		probe.Synthesis.Text = text
		probe.Translation.Text = text
	}
	if err := e.guard.Acquire(); err != nil {
		return nil, err
	}
	if err := e.transition(fsm.EventTest); err != nil {
		e.guard.Release()
		return nil, err
	}

	e.logger.Info("provider test started", "provider", e.desc.Name)
	return task.Start(ctx, probe.Run), nil
}

// Finish accepts the terminal result of a test on the owning goroutine and
// returns the message to show. The editor is idle again afterwards.
func (e *Editor) Finish(result task.Result[providers.Outcome]) (string, bool) {
	if err := e.transition(fsm.EventDone); err != nil {
		e.logger.Warn("provider test finished out of state", "provider", e.desc.Name, "error", err.Error())
	}
	e.guard.Release()

	if result.Err != nil {
		e.logger.Info("provider test failed", "provider", e.desc.Name, "task", result.ID.String(), "error", result.Err.Error())
		return result.Message(""), false
	}
	e.logger.Info("provider test passed", "provider", e.desc.Name, "task", result.ID.String())
	return result.Message(result.Value.Summary()), true
}

// Save commits the draft into the params document, writes the template
// file when the provider has one, and persists params.
func (e *Editor) Save() error {
	if err := e.transition(fsm.EventSave); err != nil {
		return err
	}
	defer func() {
		if err := e.transition(fsm.EventSaved); err != nil {
			e.logger.Warn("provider save finished out of state", "provider", e.desc.Name, "error", err.Error())
		}
	}()

	values := e.draft.Clone()
	providers.ApplyDefaults(e.desc, values)

	next := e.params.Clone()
	if err := providers.Commit(e.desc, values, &next); err != nil {
		return err
	}

	if e.desc.Template != "" {
		if slot, ok := config.TemplateSlotFor(e.desc.Template); ok {
			if err := e.store.SaveTemplate(slot, e.locale, values[e.desc.Template]); err != nil {
				return err
			}
		}
	}
	if err := e.store.SaveParams(next); err != nil {
		return err
	}

	*e.params = next
	e.draft = values
	e.logger.Info("provider saved", "provider", e.desc.Name)
	return nil
}

func (e *Editor) audioFile() string {
	if e.desc.Capability != providers.Synthesis {
		return ""
	}
	return filepath.Join(e.audioDir, "test-"+e.desc.Name+".wav")
}
