package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"pptxhtml/common"
	"pptxhtml/config"
	"pptxhtml/convert"
	"pptxhtml/misc"
	"pptxhtml/state"
)

const convertHelp = `%s
SOURCE:
    presentation(s) to convert, one of:
        a single deck: "[path_to_file]deck.pptx"
        a directory: "[path_to_directory]directory" - every deck and zip archive below it, symbolic links are not followed
        a deck inside an archive: "[path_to_archive]archive.zip[path_in_archive]/deck.pptx"
        a path inside an archive: "[path_to_archive]archive.zip[path_in_archive]" - every deck below that path

	Inside archives only .pptx, .pptm, .ppsx and .potx entries are
	converted, nested archives are skipped.

OUTPUT TYPES:
    html   - standalone page with all slides and embedded stylesheet
    events - JSON lines, one render event per line in emission order

DESTINATION:
    output directory, current working directory when absent; file names
    are built from the output name template and TYPE
`

const dumpConfigHelp = `%s

DESTINATION:
    file to write configuration to, STDOUT when absent

Writes effective configuration: embedded defaults merged with the file given
by --config. Use --default to see embedded defaults alone.
`

// app carries state shared by cli hooks.
type app struct {
	// set when error was already written to the log and must not be
	// repeated on stderr
	errLogged bool
}

// before loads configuration, prepares logging and optional debug report.
// Runs after command line is parsed.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	var (
		env        = state.EnvFromContext(ctx)
		configFile = cmd.String("config")
		err        error
	)

	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to load configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug report: %w", err)
		}
		if len(configFile) > 0 {
			// processed configuration, not the raw file
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData("config/"+filepath.Base(configFile), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logging: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Starting",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Collecting debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Info("No configuration file, using defaults")
	}
	return ctx, nil
}

// after closes logging and debug report. From here on errors go to stderr.
func (a *app) after(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Finished", zap.Duration("elapsed", env.Uptime()), zap.Strings("args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()

	if env.Rpt != nil {
		if e := env.Rpt.Close(); e != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", e))
		}
	}
	if env.Cfg == nil || len(env.Cfg.Logging.FileLogger.Destination) == 0 {
		return err
	}

	// crash output is set next to the log file, drop it when nothing crashed
	debug.SetCrashOutput(nil, debug.CrashOptions{})
	panicLog := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
	if fi, e := os.Stat(panicLog); e == nil && fi.Size() == 0 {
		if e := os.Remove(panicLog); e != nil {
			err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log '%s': %w", panicLog, e))
		}
	}
	return err
}

// logError is called before after(), while log is still open. Commands
// return plain errors, cli.Exit is not used.
func (a *app) logError(ctx context.Context, _ *cli.Command, err error) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Error("Conversion failed", zap.Error(err))
		a.errLogged = true
	}
}

// usageError passes error through, it is reported by logError or main.
func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func unknownCommand(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:         "convert",
		Usage:        "Converts presentation(s) to HTML page or render event stream",
		OnUsageError: usageError,
		Action:       convert.Run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Value: common.OutputFmtHtml.String(),
				Usage: "output `TYPE` (" + strings.Join(common.OutputFmtNames(), ", ") + ")"},
			&cli.BoolFlag{Name: "nodirs", Aliases: []string{"nd"}, Usage: "put all results into DESTINATION, do not repeat source directory structure"},
			&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "replace existing results instead of stopping"},
			&cli.StringFlag{Name: "force-zip-cp",
				Usage: "decode ALL non UTF-8 entry names in archives using `ENCODING` (IANA character set name)"},
		},
		ArgsUsage:          "SOURCE [DESTINATION]",
		CustomHelpTemplate: fmt.Sprintf(convertHelp, cli.CommandHelpTemplate),
	}
}

func dumpConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "dumpconfig",
		Usage: "Writes default or effective configuration (YAML)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "default", Usage: "write embedded defaults"},
		},
		OnUsageError:       usageError,
		Action:             dumpConfig,
		ArgsUsage:          "DESTINATION",
		CustomHelpTemplate: fmt.Sprintf(dumpConfigHelp, cli.CommandHelpTemplate),
	}
}

func main() {
	// interrupt cancels context, rendering stops at the next slide
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	a := &app{}
	cmd := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "converts PowerPoint (PPTX) presentations to HTML",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          a.before,
		After:           a.after,
		OnUsageError:    usageError,
		ExitErrHandler:  a.logError,
		CommandNotFound: unknownCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "verbose processing, collects report archive for troubleshooting"},
		},
		Commands: []*cli.Command{convertCommand(), dumpConfigCommand()},
	}

	err := cmd.Run(ctx, os.Args)
	stop()
	if err != nil {
		// log may be closed or never opened
		if !a.errLogged {
			fmt.Fprintf(os.Stderr, "%s: %v\n", misc.GetAppName(), err)
		}
		os.Exit(1)
	}
}

func dumpConfig(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Too many destinations, using first", zap.Strings("ignored", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		kind = "effective"
	)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to produce %s configuration: %w", kind, err)
	}

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		env.Log.Info("Writing configuration", zap.String("kind", kind), zap.String("file", "STDOUT"))
		_, err = os.Stdout.Write(data)
		return err
	}

	env.Log.Info("Writing configuration", zap.String("kind", kind), zap.String("file", fname))
	out, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("unable to create '%s': %w", fname, err)
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()
	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
