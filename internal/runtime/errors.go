package runtime

import (
	mterrors "github.com/mtplates/mtplates/internal/errors"
	"github.com/mtplates/mtplates/internal/logging"
	"github.com/mtplates/mtplates/internal/output"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch mterrors.Classify(err) {
	case mterrors.CategoryUnknown:
		if err == nil {
			return ExitOK
		}
		return ExitFailure
	case mterrors.CategoryUser:
		return ExitUsage
	default:
		return ExitFailure
	}
}

// ReportError writes a JSON error object to the formatter in JSON mode,
// otherwise a styled message and its suggestion to Stderr.
func (c *Context) ReportError(err error) {
	if err == nil {
		return
	}
	if c.Debug {
		logging.DebugLog("command failed",
			"category", mterrors.Classify(err).String(),
			"chain", mterrors.Chain(err))
	}
	if c.IsJSON() {
		_ = c.JSONFormatter().PrintError(mterrors.Classify(err).String(), err.Error(), mterrors.GetSuggestion(err))
		return
	}

	cli := c.CLIFormatter()
	if c.Stderr != nil {
		cli = output.NewCLIFormatter(&output.Formatter{
			Writer:    c.Stderr,
			Format:    c.Formatter.Format,
			ColorMode: c.Formatter.ColorMode,
		})
	}
	cli.PrintError(err.Error(), mterrors.GetSuggestion(err))
}
