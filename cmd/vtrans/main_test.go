package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const helperEnv = "VTRANS_TEST_MAIN"

func TestMainHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}
	for i, arg := range os.Args {
		if arg == "--" {
			os.Args = append([]string{"vtrans"}, os.Args[i+1:]...)
			break
		}
	}
	main()
}

// runMain re-executes the test binary as the vtrans process.
func runMain(t *testing.T, args ...string) (string, int) {
	t.Helper()

	cmd := exec.Command(os.Args[0], append([]string{"-test.run=TestMainHelperProcess", "--"}, args...)...)
	cmd.Env = append(os.Environ(), helperEnv+"=1")
	output, err := cmd.CombinedOutput()
	if err == nil {
		return string(output), 0
	}
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "run: %v", err)
	return string(output), exitErr.ExitCode()
}

func TestMainExitCodes(t *testing.T) {
	emptyRoot := t.TempDir()

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{name: "help", args: []string{"--help"}, code: 0, want: "Usage:"},
		{name: "version", args: []string{"version"}, code: 0, want: "vtrans "},
		{name: "unknown command", args: []string{"not-a-command"}, code: 2, want: "unknown command"},
		{name: "missing argument", args: []string{"settings", "get"}, code: 2, want: "Usage:"},
		{name: "missing bundle", args: []string{"--root", emptyRoot, "settings", "show"}, code: 1, want: "error:"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			output, code := runMain(t, tc.args...)
			require.Equal(t, tc.code, code, output)
			require.Contains(t, output, tc.want)
		})
	}
}

func TestMainSettingsAgainstRoot(t *testing.T) {
	root := t.TempDir()
	languages := filepath.Join(root, "data", "language")
	require.NoError(t, os.MkdirAll(languages, 0o755))
	bundle := `{"translate_language":{},"ui_lang":{},"toolbox_lang":{},"language_code_list":{"en":"English"}}`
	require.NoError(t, os.WriteFile(filepath.Join(languages, "en.json"), []byte(bundle), 0o644))

	output, code := runMain(t, "--root", root, "settings", "get", "crf")
	require.Equal(t, 0, code, output)
	require.Contains(t, output, "13")

	_, err := os.Stat(filepath.Join(root, "data", "cfg.json"))
	require.NoError(t, err)
}
