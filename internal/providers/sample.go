package providers

import (
	"context"
	"errors"
	"fmt"
)

// TestRate is the neutral speaking rate of synthesis probes.
const TestRate = "+0%"

// SynthesisSample builds the probe request for d. The role comes from the
// role field when one is configured, else from the fixed sample.
func SynthesisSample(d Descriptor, locale string, values Values, target string) (SynthesisRequest, error) {
	if d.Sample == nil || d.Capability != Synthesis {
		return SynthesisRequest{}, fmt.Errorf("%s: no synthesis test", d.Name)
	}
	s := d.Sample
	req := SynthesisRequest{
		Text:       pick(locale, s.Text, s.TextZH),
		Role:       pick(locale, s.Role, s.RoleZH),
		Language:   pick(locale, s.Language, s.LanguageZH),
		Rate:       TestRate,
		TargetFile: target,
	}
	if d.RoleField != "" {
		role, err := ParseRoles(d.RoleFormat, values[d.RoleField])
		if err != nil {
			return SynthesisRequest{}, err
		}
		if role != "" || req.Role == "" {
			req.Role = role
		}
	}
	return req, nil
}

// TranslationSample builds the probe request for d.
func TranslationSample(d Descriptor, locale string) (TranslationRequest, error) {
	if d.Sample == nil || d.Capability != Translation {
		return TranslationRequest{}, fmt.Errorf("%s: no translation test", d.Name)
	}
	s := d.Sample
	return TranslationRequest{
		Text:           pick(locale, s.Text, s.TextZH),
		TargetLanguage: pick(locale, s.Target, s.TargetZH),
		SourceLanguage: s.Source,
	}, nil
}

// Outcome is the terminal value of one test action.
type Outcome struct {
	Provider   string
	Capability Capability
	// Source and Translation are set for translation tests.
	Source      string
	Translation string
	// AudioFile is set for synthesis tests.
	AudioFile string
}

// Summary is the success message for the outcome.
func (o Outcome) Summary() string {
	if o.Capability == Translation {
		return fmt.Sprintf("%s\n%s", o.Source, o.Translation)
	}
	return "Test Ok"
}

// Probe is a fully captured test action. Run touches nothing but its own
// fields, so it may run on any goroutine.
type Probe struct {
	Descriptor  Descriptor
	Synthesizer Synthesizer
	Translator  Translator
	Prober      Prober
	Synthesis   SynthesisRequest
	Translation TranslationRequest
}

// NewProbe validates values and captures the adapters and request for a
// test action. Validation failures are returned before anything is built.
func NewProbe(f *Factory, d Descriptor, locale string, values Values, audioFile string) (*Probe, error) {
	if !d.Testable() {
		return nil, fmt.Errorf("%s: %w", d.Name, ErrUnsupported)
	}
	values = values.Clone()
	ApplyDefaults(d, values)
	if err := Validate(d, values); err != nil {
		return nil, err
	}

	p := &Probe{Descriptor: d}
	var err error
	switch d.Capability {
	case Synthesis:
		if p.Synthesizer, err = f.Synthesizer(d.Name, values); err != nil {
			return nil, err
		}
		if p.Synthesis, err = SynthesisSample(d, locale, values, audioFile); err != nil {
			return nil, err
		}
	case Translation:
		if p.Translator, err = f.Translator(d.Name, values); err != nil {
			return nil, err
		}
		if p.Translation, err = TranslationSample(d, locale); err != nil {
			return nil, err
		}
	case Recognition:
		if p.Prober, err = f.Prober(d.Name, values); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unknown capability")
	}
	return p, nil
}

// Run performs the one network call of the probe.
func (p *Probe) Run(ctx context.Context) (Outcome, error) {
	out := Outcome{Provider: p.Descriptor.Name, Capability: p.Descriptor.Capability}
	switch p.Descriptor.Capability {
	case Synthesis:
		if err := p.Synthesizer.Synthesize(ctx, p.Synthesis); err != nil {
			return out, err
		}
		out.AudioFile = p.Synthesis.TargetFile
	case Translation:
		text, err := p.Translator.Translate(ctx, p.Translation)
		if err != nil {
			return out, err
		}
		out.Source = p.Translation.Text
		out.Translation = text
	case Recognition:
		if err := p.Prober.Probe(ctx); err != nil {
			return out, err
		}
	}
	return out, nil
}
