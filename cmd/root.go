// Package cmd provides the CLI commands for mtplates.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mtplates/mtplates/internal/config"
	mterrors "github.com/mtplates/mtplates/internal/errors"
	"github.com/mtplates/mtplates/internal/logging"
	"github.com/mtplates/mtplates/internal/output"
	"github.com/mtplates/mtplates/internal/prompt"
	"github.com/mtplates/mtplates/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat  string
	flagColor   string
	flagDebug   bool
	flagSeed    string
	flagEntries string
	flagBackend string
	flagBadger  string
	flagNoIntro bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// reportedError marks an error whose message the command already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mtplates",
	Short: "Look up Montana counties and license plate prefixes by city",
	Long: `mtplates maps Montana city names to their county and the county's
license plate prefix. Run it without arguments for an interactive session
that can also record cities it does not know yet.

Examples:
  mtplates
  mtplates lookup Bozeman
  mtplates add "Four Corners" --county Gallatin
  mtplates list --county Gallatin
  mtplates counties`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDebug {
			logging.InitDebug()
		} else {
			logging.Init(logging.DefaultConfig())
		}

		if skipsRuntime(cmd) {
			return nil
		}

		opts := runtime.DefaultOptions()
		opts.Format = output.ParseFormat(flagFormat)
		opts.ColorMode = output.ParseColorMode(flagColor)
		opts.Debug = flagDebug
		if flagSeed != "" {
			opts.SeedFile = flagSeed
		}
		if flagEntries != "" {
			opts.EntriesFile = flagEntries
		}
		if flagBackend != "" {
			opts.Backend = flagBackend
		}
		if flagBadger != "" {
			opts.BadgerDir = flagBadger
		}

		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()
		ctx.Stderr = cmd.ErrOrStderr()

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			err := ctx.Close()
			ctx = nil
			return err
		}
		return nil
	},
	RunE: runInteractive,
}

// runInteractive runs the prompt loop on stdin.
func runInteractive(cmd *cobra.Command, args []string) error {
	if ctx.IsJSON() {
		return mterrors.NewUserError("The interactive session has no JSON output",
			"Use 'mtplates lookup CITY --format json' instead.")
	}

	in := cmd.InOrStdin()
	session := prompt.NewSession(ctx.Store, in, ctx.CLIFormatter())
	session.Intro = !flagNoIntro && isTerminal(in)
	return session.Run()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// skipsRuntime reports whether cmd runs without loading the city data.
// Dynamic completions (__complete) still need it.
func skipsRuntime(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "completion", "help", "version":
			return true
		}
	}
	return false
}

// Execute runs the root command and reports any error.
// It returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		Die(err)
	}
	if ctx != nil {
		ctx.Close()
		ctx = nil
	}
	return runtime.ExitCode(err)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "",
		"Seed CSV (city,county,prefix); default is the built-in dataset ($MTPLATES_SEED_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagEntries, "entries", "",
		"User-added cities file for the text backend ($MTPLATES_ENTRIES_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "",
		"Where added cities are stored: "+config.BackendText+", "+config.BackendBadger+" ($MTPLATES_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&flagBadger, "badger-dir", "",
		"Database directory for the badger backend ($MTPLATES_BADGER_DIR)")
	rootCmd.Flags().BoolVar(&flagNoIntro, "no-intro", false,
		"Skip the greeting in the interactive session")

	rootCmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions(
		[]string{config.BackendText, config.BackendBadger}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"cli", "json", "plain"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("mtplates %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Printf("  entries: %s\n", config.Global.Data.EntriesFile)
		cmd.Printf("  backend: %s\n", config.Global.Data.Backend)
	},
}

// Die prints an error. Errors already shown by the command are skipped.
// Without a runtime context (initialization failed) the message goes to stderr,
// or stdout as JSON.
func Die(err error) {
	var reported *reportedError
	if errors.As(err, &reported) {
		return
	}
	if ctx != nil {
		ctx.ReportError(err)
		return
	}
	if output.ParseFormat(flagFormat) == output.FormatJSON {
		f := output.NewJSONFormatter(&output.Formatter{Writer: rootCmd.OutOrStdout(), Format: output.FormatJSON})
		_ = f.PrintError(mterrors.Classify(err).String(), err.Error(), mterrors.GetSuggestion(err))
		return
	}
	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error: "+mterrors.FormatByCategory(err))
}
