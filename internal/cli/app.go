// Package cli implements the provcodes command line.
//
//	provcodes list     [-format text|json|yaml]
//	provcodes code     <name>...
//	provcodes name     <code>...
//	provcodes annotate [flags] <input|->
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"github.com/JonMunkholm/provcodes/internal/config"
	"github.com/JonMunkholm/provcodes/internal/logging"
	"github.com/JonMunkholm/provcodes/internal/tabular"
	"github.com/JonMunkholm/provcodes/internal/usererr"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

const (
	appName     = "provcodes"
	appSynopsis = "<command> [arguments]"
)

// notAvailable is printed for names or codes that do not resolve.
const notAvailable = "NA"

// App runs one command against the given streams.
type App struct {
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// usageError is a command-line mistake. It exits with ExitUsage; an empty
// msg means help was already printed.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// ExitCode implements cli.ExitCoder.
func (e *usageError) ExitCode() int {
	return ExitUsage
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// onUsageError turns flag parse failures into usage errors.
func onUsageError(_ *cli.Context, err error, _ bool) error {
	return usagef("%v", err)
}

// Run executes the command named by args[0] and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if a.Config == nil {
		a.Config = config.Default()
	}

	code := ExitOK
	app := a.newApp(ctx)
	app.ExitErrHandler = func(c *cli.Context, err error) {
		if err != nil {
			code = a.report(ctx, c.Command, err)
		}
	}

	// Errors raised outside an action never reach ExitErrHandler.
	if err := app.Run(append([]string{appName}, args...)); err != nil && code == ExitOK {
		code = a.report(ctx, cli.Command{}, err)
	}
	return code
}

func (a *App) newApp(ctx context.Context) *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.HelpName = appName
	app.Usage = "look up Argentine province codes and annotate survey files"
	app.UsageText = appName + " " + appSynopsis
	app.HideVersion = true
	app.Writer = a.Stdout
	app.ErrWriter = a.Stderr
	app.OnUsageError = onUsageError
	app.Commands = a.commands(ctx)

	app.Action = func(c *cli.Context) error {
		if !c.Args().Present() {
			cli.HelpPrinter(a.Stderr, cli.AppHelpTemplate, c.App)
			return &usageError{}
		}
		return usagef("unknown command %q", c.Args().First())
	}
	app.CommandNotFound = func(_ *cli.Context, name string) {
		fmt.Fprintf(a.Stderr, "%s: no help for unknown command %q\n", appName, name)
	}
	return app
}

func (a *App) commands(ctx context.Context) []cli.Command {
	ann := a.Config.Annotate
	return []cli.Command{
		{
			Name:      "list",
			Usage:     "list every province with its code",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "format", Value: "text", Usage: "output format: text, json or yaml"},
			},
			OnUsageError: onUsageError,
			Action:       a.action(ctx, a.runList),
		},
		{
			Name:         "code",
			Usage:        "print the code of each province name",
			ArgsUsage:    "<name>...",
			OnUsageError: onUsageError,
			Action:       a.action(ctx, a.runCode),
		},
		{
			Name:         "name",
			Usage:        "print the province name of each code",
			ArgsUsage:    "<code>...",
			OnUsageError: onUsageError,
			Action:       a.action(ctx, a.runName),
		},
		{
			Name:      "annotate",
			Usage:     "add a province code column to a CSV or XLSX file",
			ArgsUsage: "<input|->",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "name-column", Value: ann.NameColumn, Usage: "column holding province names"},
				cli.StringFlag{Name: "code-column", Value: ann.CodeColumn, Usage: "column that receives the codes"},
				cli.StringFlag{Name: "sheet", Value: ann.Sheet, Usage: "XLSX sheet to read (default first sheet)"},
				cli.StringFlag{Name: "comma", Value: ann.Comma, Usage: "CSV delimiter"},
				cli.StringFlag{Name: "encoding", Value: ann.Encoding, Usage: "CSV input encoding: utf-8, latin1 or windows-1252"},
				cli.BoolFlag{Name: "strict", Usage: "fail when any province name is unresolved"},
				cli.StringFlag{Name: "format", Value: "csv", Usage: "format of stdin and stdout: " + strings.Join(tabular.FormatNames(), " or ")},
				cli.StringFlag{Name: "o", TakesFile: true, Usage: "output path, - for stdout (default <input>_con_codigos.<ext>)"},
			},
			OnUsageError: onUsageError,
			Action:       a.action(ctx, a.runAnnotate),
		},
	}
}

// action adapts a command body to cli.ActionFunc, logging its start and end.
func (a *App) action(ctx context.Context, run func(context.Context, *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		logger := logging.WithFields(ctx, "command", c.Command.Name)
		logger.Debug("command started", "args", []string(c.Args()))

		if err := run(ctx, c); err != nil {
			return err
		}

		logger.Debug("command finished")
		return nil
	}
}

// report prints err for the user and returns the exit code it maps to.
func (a *App) report(ctx context.Context, cmd cli.Command, err error) int {
	prefix, help := appName, appName+" help"
	if cmd.Name != "" {
		prefix += " " + cmd.Name
		help = prefix + " -h"
	}

	var exit cli.ExitCoder
	if errors.As(err, &exit) {
		if msg := exit.Error(); msg != "" {
			fmt.Fprintf(a.Stderr, "%s: %s\n", prefix, msg)
			fmt.Fprintf(a.Stderr, "run '%s' for usage\n", help)
		}
		return exit.ExitCode()
	}

	ue := usererr.NewUserError(err)
	logger := logging.WithFields(ctx, "command", cmd.Name, "code", ue.User.Code)
	if usererr.IsUserFacing(err) {
		logger.Warn("command failed", "error", ue.Technical)
	} else {
		logger.Error("command failed", "error", ue.Technical)
	}

	fmt.Fprintf(a.Stderr, "%s: %s (Code: %s). %s\n", prefix, ue.User.Message, ue.User.Code, ue.User.Action)
	fmt.Fprintf(a.Stderr, "  cause: %v\n", ue.Technical)
	return ExitFailure
}

// oneOf validates an enumerated flag value.
func oneOf(flagName, value string, allowed ...string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", usagef("-%s must be one of %s, got %q", flagName, strings.Join(allowed, ", "), value)
}
