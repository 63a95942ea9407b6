package doctor

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rbright/vtrans/internal/config"
	"github.com/rbright/vtrans/internal/i18n"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestReportOKAndString(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "one", Pass: true, Message: "good"},
		{Name: "two", Pass: false, Message: "bad"},
	}}

	require.False(t, report.OK())
	text := report.String()
	require.Contains(t, text, "[OK] one: good")
	require.Contains(t, text, "[FAIL] two: bad")
}

func TestReportOKAllPassing(t *testing.T) {
	report := Report{Checks: []Check{{Name: "one", Pass: true}, {Name: "two", Pass: true}}}
	require.True(t, report.OK())
}

func TestCheckBinaryFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ffmpeg"), []byte("#!/usr/bin/env sh\nexit 0\n"), 0o755))
	t.Setenv("PATH", dir)

	check := checkBinary("ffmpeg", "video tooling available")
	require.True(t, check.Pass)
	require.Contains(t, check.Message, filepath.Join(dir, "ffmpeg"))
}

func TestCheckBinaryMissing(t *testing.T) {
	check := checkBinary("definitely-not-a-real-binary", "unused")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "binary not found")
}

func TestLoadedCheckMessages(t *testing.T) {
	require.Equal(t, `loaded "/r/data/cfg.json"`, loadedCheck("settings", "/r/data/cfg.json", false, 0).Message)
	require.Equal(t, `created "/r/data/cfg.json" with defaults (2 warning(s))`, loadedCheck("settings", "/r/data/cfg.json", true, 2).Message)
}

func TestCheckBundleNotesFallback(t *testing.T) {
	check := checkBundle(i18n.Bundle{Code: "en", Requested: "fr", Path: "/r/data/language/en.json"})
	require.True(t, check.Pass)
	require.Contains(t, check.Message, `fallback for "fr"`)

	require.False(t, checkBundle(i18n.Bundle{}).Pass)
}

func TestProbeTarget(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		usable bool
	}{
		{raw: "", usable: false},
		{raw: "eastasia", usable: false},
		{raw: "https://api.openai.com/v1", want: "https://api.openai.com/v1", usable: true},
		{raw: "127.0.0.1:9966", want: "http://127.0.0.1:9966", usable: true},
		{raw: " grpc://127.0.0.1:50051 ", want: "grpc://127.0.0.1:50051", usable: true},
	}

	for _, tc := range tests {
		got, ok := probeTarget(tc.raw)
		require.Equal(t, tc.usable, ok, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
	}
}

func TestEndpointsDedupesSharedKeys(t *testing.T) {
	params := config.DefaultParams(config.ParamsOptions{Locale: "en"})
	params.ChatGPTAPI = "https://api.openai.com/v1"
	params.DeepLXAddress = "127.0.0.1:1188"
	params.AzureSpeechRegion = "eastasia"

	endpoints := Endpoints(params)
	require.Len(t, endpoints, 2)
	require.Equal(t, "chatgpt_api", endpoints[0].Key)
	require.Contains(t, endpoints[0].Name, "chatgpt")
	require.Contains(t, endpoints[0].Name, "openaitts")
	require.Contains(t, endpoints[0].Name, "+")
	require.Equal(t, Endpoint{Name: "deeplx", Key: "deeplx_address", URL: "http://127.0.0.1:1188"}, endpoints[1])
}

func TestCheckHTTP(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(ok.Close)
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(broken.Close)

	check := checkHTTP(context.Background(), ok.Client(), ok.URL)
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "HTTP 404")

	check = checkHTTP(context.Background(), broken.Client(), broken.URL)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "HTTP 503")

	check = checkHTTP(context.Background(), http.DefaultClient, "http://127.0.0.1:1")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "request failed")
}

func TestCheckEndpointTimesOut(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(slow.Close)
	t.Cleanup(func() { close(release) })

	in := Input{Timeout: 50 * time.Millisecond, Client: slow.Client()}
	check := checkEndpoint(context.Background(), in, Endpoint{Name: "ttsapi", Key: "ttsapi_url", URL: slow.URL})
	require.False(t, check.Pass)
	require.Equal(t, "endpoint.ttsapi.ttsapi_url", check.Name)
}

func startGRPC(t *testing.T, register func(*grpc.Server)) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := grpc.NewServer()
	register(server)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)
	return lis.Addr().String()
}

func TestCheckGRPCServing(t *testing.T) {
	addr := startGRPC(t, func(s *grpc.Server) {
		healthpb.RegisterHealthServer(s, health.NewServer())
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	check := checkGRPC(ctx, addr)
	require.True(t, check.Pass, check.Message)
	require.Contains(t, check.Message, "serving")
}

func TestCheckGRPCNotServing(t *testing.T) {
	addr := startGRPC(t, func(s *grpc.Server) {
		hs := health.NewServer()
		hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		healthpb.RegisterHealthServer(s, hs)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	check := checkGRPC(ctx, addr)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "NOT_SERVING")
}

func TestCheckGRPCWithoutHealthService(t *testing.T) {
	addr := startGRPC(t, func(*grpc.Server) {})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	check := checkGRPC(ctx, addr)
	require.True(t, check.Pass, check.Message)
	require.Contains(t, check.Message, "no health service")
}

func TestCheckGRPCUnreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	check := checkGRPC(ctx, addr)
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "not ready")
}

func TestRunReportsEveryCheck(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	params := config.DefaultParams(config.ParamsOptions{Locale: "en"})
	params.TTSAPIURL = server.URL

	report := Run(context.Background(), Input{
		Settings: config.LoadedSettings{Path: "/r/data/cfg.json"},
		Params:   config.LoadedParams{Path: "/r/data/params.json", Params: params},
		Bundle:   i18n.Bundle{Code: "en", Requested: "en", Path: "/r/data/language/en.json"},
		Client:   server.Client(),
	})

	names := make([]string, 0, len(report.Checks))
	for _, check := range report.Checks {
		names = append(names, check.Name)
	}
	require.Equal(t, []string{"settings", "params", "language", "ffmpeg", "endpoint.ttsapi.ttsapi_url"}, names)
	require.False(t, report.OK())
	require.True(t, strings.HasPrefix(report.String(), "[OK] settings"))
}
