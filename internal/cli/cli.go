// Package cli declares the vtrans command tree. Commands only parse; the
// Handler executes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// Handler runs parsed commands.
type Handler interface {
	SettingsShow(ctx context.Context, format string) error
	SettingsGet(ctx context.Context, key string) error
	SettingsSet(ctx context.Context, key, value string) error
	ParamsShow(ctx context.Context, format string) error
	ParamsGet(ctx context.Context, key string) error
	ParamsSet(ctx context.Context, key, value string) error
	Lists(ctx context.Context, name string) error
	Providers(ctx context.Context) error
	Test(ctx context.Context, provider string, opts TestOptions) error
	Edit(ctx context.Context, provider string) error
	Locale(ctx context.Context) error
	Doctor(ctx context.Context) error
	Devices(ctx context.Context) error
	Version(ctx context.Context) error
}

// Globals are the persistent flags shared by every command.
type Globals struct {
	Root string
}

// TestOptions are the flags of the test command.
type TestOptions struct {
	Text string
	Play bool
}

// UsageError marks a command line that did not parse.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitError ends the process with Code after the command already reported
// its outcome.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Root is one parse-and-run of the command tree.
type Root struct {
	Command *cobra.Command
	Globals Globals

	ran bool
}

// New builds the command tree bound to h.
func New(h Handler, stdout, stderr io.Writer) *Root {
	r := &Root{}
	root := &cobra.Command{
		Use:           "vtrans",
		Short:         "Settings core of the vtrans video translation workstation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&r.Globals.Root, "root", "", "workspace root (default: $VTRANS_ROOT, the executable directory, or the working directory)")

	root.AddCommand(
		documentCommand(r, "settings", "cfg.json tunables", h.SettingsShow, h.SettingsGet, h.SettingsSet),
		documentCommand(r, "params", "params.json provider credentials and endpoints", h.ParamsShow, h.ParamsGet, h.ParamsSet),
		&cobra.Command{
			Use:   "lists [NAME]",
			Short: "Print the pick-lists derived from settings",
			Args:  usageArgs(cobra.MaximumNArgs(1)),
			RunE: r.run(func(cmd *cobra.Command, args []string) error {
				name := ""
				if len(args) == 1 {
					name = args[0]
				}
				return h.Lists(cmd.Context(), name)
			}),
		},
		&cobra.Command{
			Use:   "providers",
			Short: "List the provider descriptors",
			Args:  usageArgs(cobra.NoArgs),
			RunE: r.run(func(cmd *cobra.Command, _ []string) error {
				return h.Providers(cmd.Context())
			}),
		},
		testCommand(r, h),
		&cobra.Command{
			Use:   "edit [PROVIDER]",
			Short: "Edit provider settings in the terminal editor",
			Args:  usageArgs(cobra.MaximumNArgs(1)),
			RunE: r.run(func(cmd *cobra.Command, args []string) error {
				provider := ""
				if len(args) == 1 {
					provider = args[0]
				}
				return h.Edit(cmd.Context(), provider)
			}),
		},
		simpleCommand(r, "locale", "Print the resolved UI locale and bundle", h.Locale),
		simpleCommand(r, "doctor", "Run configuration and endpoint checks", h.Doctor),
		simpleCommand(r, "devices", "List audio output sinks", h.Devices),
		simpleCommand(r, "version", "Print version information", h.Version),
	)

	r.Command = root
	return r
}

// Execute parses args and runs the selected command. Failures that happen
// before a command starts are UsageErrors.
func (r *Root) Execute(ctx context.Context, args []string) error {
	r.Command.SetArgs(args)
	err := r.Command.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var usage *UsageError
	if !r.ran && !errors.As(err, &usage) {
		return &UsageError{Err: err}
	}
	return err
}

// UsageText returns the help of the command args select.
func (r *Root) UsageText(args []string) string {
	cmd, _, err := r.Command.Find(args)
	if err != nil || cmd == nil {
		cmd = r.Command
	}
	return cmd.UsageString()
}

func (r *Root) run(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		r.ran = true
		return fn(cmd, args)
	}
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

func simpleCommand(r *Root, use, short string, fn func(context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  usageArgs(cobra.NoArgs),
		RunE: r.run(func(cmd *cobra.Command, _ []string) error {
			return fn(cmd.Context())
		}),
	}
}

func documentCommand(
	r *Root,
	name, what string,
	show func(context.Context, string) error,
	get func(context.Context, string) error,
	set func(context.Context, string, string) error,
) *cobra.Command {
	parent := &cobra.Command{
		Use:   name,
		Short: "Read and write " + what,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the whole document",
		Args:  usageArgs(cobra.NoArgs),
		RunE: r.run(func(cmd *cobra.Command, _ []string) error {
			return show(cmd.Context(), format)
		}),
	}
	showCmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	showCmd.PreRunE = func(*cobra.Command, []string) error {
		switch strings.ToLower(format) {
		case "json", "yaml":
			format = strings.ToLower(format)
			return nil
		default:
			return &UsageError{Err: fmt.Errorf("unsupported --format %q (want json or yaml)", format)}
		}
	}

	parent.AddCommand(
		showCmd,
		&cobra.Command{
			Use:   "get KEY",
			Short: "Print one value",
			Args:  usageArgs(cobra.ExactArgs(1)),
			RunE: r.run(func(cmd *cobra.Command, args []string) error {
				return get(cmd.Context(), args[0])
			}),
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Assign one value and save the document",
			Args:  usageArgs(cobra.ExactArgs(2)),
			RunE: r.run(func(cmd *cobra.Command, args []string) error {
				return set(cmd.Context(), args[0], args[1])
			}),
		},
	)
	return parent
}

func testCommand(r *Root, h Handler) *cobra.Command {
	var opts TestOptions
	cmd := &cobra.Command{
		Use:   "test PROVIDER",
		Short: "Run the provider's one-shot connectivity test",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: r.run(func(cmd *cobra.Command, args []string) error {
			return h.Test(cmd.Context(), args[0], opts)
		}),
	}
	cmd.Flags().StringVar(&opts.Text, "text", "", "text to synthesize or translate instead of the sample")
	cmd.Flags().BoolVar(&opts.Play, "play", false, "play the synthesized clip")
	return cmd
}
