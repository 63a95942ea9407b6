// Package doctor runs readiness diagnostics for the stores, the bundle,
// bundled tools, and the configured provider endpoints.
package doctor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/rbright/vtrans/internal/config"
	"github.com/rbright/vtrans/internal/i18n"
	"github.com/rbright/vtrans/internal/providers"
)

const defaultProbeTimeout = 2 * time.Second

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Input is everything the report inspects.
type Input struct {
	Settings config.LoadedSettings
	Params   config.LoadedParams
	Bundle   i18n.Bundle
	// Timeout bounds each endpoint probe. Zero means two seconds.
	Timeout time.Duration
	Client  *http.Client
}

// Run executes the store, bundle, tool, and endpoint checks.
func Run(ctx context.Context, in Input) Report {
	if in.Timeout <= 0 {
		in.Timeout = defaultProbeTimeout
	}
	if in.Client == nil {
		in.Client = &http.Client{}
	}

	checks := []Check{
		loadedCheck("settings", in.Settings.Path, in.Settings.Created, len(in.Settings.Warnings)),
		loadedCheck("params", in.Params.Path, in.Params.Created, len(in.Params.Warnings)),
		checkBundle(in.Bundle),
		checkBinary("ffmpeg", "video tooling available"),
	}

	for _, ep := range Endpoints(in.Params.Params) {
		checks = append(checks, checkEndpoint(ctx, in, ep))
	}

	return Report{Checks: checks}
}

func loadedCheck(name, path string, created bool, warnings int) Check {
	message := fmt.Sprintf("loaded %q", path)
	if created {
		message = fmt.Sprintf("created %q with defaults", path)
	}
	if warnings > 0 {
		message += fmt.Sprintf(" (%d warning(s))", warnings)
	}
	return Check{Name: name, Pass: true, Message: message}
}

func checkBundle(b i18n.Bundle) Check {
	if b.Code == "" {
		return Check{Name: "language", Pass: false, Message: "no language bundle loaded"}
	}
	message := fmt.Sprintf("%s from %q", b.Code, b.Path)
	if b.Fallback() {
		message += fmt.Sprintf(" (fallback for %q)", b.Requested)
	}
	return Check{Name: "language", Pass: true, Message: message}
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// Endpoint is one configured provider address.
type Endpoint struct {
	// Name is provider.key, joined with "+" when providers share the key.
	Name string
	Key  string
	URL  string
}

// Endpoints lists the probeable addresses configured in params: every
// non-empty URL field that carries a scheme or a host:port. Shared keys
// are probed once.
func Endpoints(params config.Params) []Endpoint {
	byKey := map[string]*Endpoint{}
	for _, d := range providers.All() {
		values := providers.ValuesFrom(d, params)
		for _, f := range d.Fields {
			if f.Kind != providers.KindURL {
				continue
			}
			target, ok := probeTarget(values[f.Key])
			if !ok {
				continue
			}
			if ep, seen := byKey[f.Key]; seen {
				ep.Name += "+" + d.Name
				continue
			}
			byKey[f.Key] = &Endpoint{Name: d.Name, Key: f.Key, URL: target}
		}
	}

	out := make([]Endpoint, 0, len(byKey))
	for _, ep := range byKey {
		out = append(out, *ep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func probeTarget(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", false
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"), strings.HasPrefix(raw, "grpc://"):
		return raw, true
	case strings.Contains(raw, ":"):
		return "http://" + raw, true
	default:
		return "", false
	}
}

func checkEndpoint(ctx context.Context, in Input, ep Endpoint) Check {
	name := "endpoint." + ep.Name + "." + ep.Key
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	if target, ok := strings.CutPrefix(ep.URL, "grpc://"); ok {
		check := checkGRPC(ctx, target)
		check.Name = name
		return check
	}
	check := checkHTTP(ctx, in.Client, ep.URL)
	check.Name = name
	return check
}

// checkHTTP treats any non-5xx answer as reachable. Provider base URLs
// commonly answer 401 or 404 on a bare GET.
func checkHTTP(ctx context.Context, client *http.Client, url string) Check {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Check{Pass: false, Message: fmt.Sprintf("invalid url %q: %v", url, err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Check{Pass: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 256))

	if resp.StatusCode >= 500 {
		return Check{Pass: false, Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, url)}
	}
	return Check{Pass: true, Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, url)}
}
