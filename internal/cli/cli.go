package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/flowgridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("flowgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
FlowGrid - A lazy, reactive dataflow pipeline runner.

Usage:
  flowgrid [options] [PIPELINE_PATH]

Arguments:
  PIPELINE_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	pipelineFlag := flagSet.String("pipeline", "", "Path to the pipeline file or directory.")
	pFlag := flagSet.String("p", "", "Path to the pipeline file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	dotFlag := flagSet.Bool("dot", false, "Print the pipeline graph as Graphviz DOT source and exit.")
	watchFlag := flagSet.Bool("watch", false, "Connect remote controls and re-evaluate sinks on every change.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *pipelineFlag != "" {
		path = *pipelineFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Pipeline path determined.", "path", path)

	if path == "" {
		slog.Debug("No pipeline path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PipelinePath: path,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		Dot:          *dotFlag,
		Watch:        *watchFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
