package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/kinoko/internal/config"
	"github.com/you-not-fish/kinoko/internal/diag"
)

// errReported is returned by commands whose failure was already written to
// stderr as a diagnostic.
var errReported = errors.New("reported")

// app carries the flag values and the state shared by all commands.
type app struct {
	cfgFile  string
	logLevel string
	noColor  bool
	context  int

	cfg *config.Config
	log *slog.Logger
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kinokoc",
		Short: "kinoko front end: tokenizer and parser",
		Long: `kinokoc reads kinoko source files and reports their tokens, their
syntax tree, or the first lexical or syntax error.

Commands:
  tokens   - token table of one file
  parse    - syntax tree of one file (text, json or yaml)
  check    - parse files and report ok or the diagnostic
  repl     - interactive editor with live tokens and tree`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored diagnostics")
	root.PersistentFlags().IntVar(&a.context, "context", 0, "source lines shown above a diagnostic")

	root.AddCommand(
		a.tokensCmd(),
		a.parseCmd(),
		a.checkCmd(),
		a.replCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	cfg, err := config.Discover(a.cfgFile, wd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("no-color") {
		cfg.Color = !a.noColor
	}
	if flags.Changed("context") {
		cfg.ContextLines = a.context
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()})).
		With("run", uuid.NewString())
	a.log.Debug("config loaded", "path", cfg.Path(), "format", cfg.Format, "color", cfg.Color)
	return nil
}

// reporter returns the diagnostic writer for cmd's stderr.
func (a *app) reporter(cmd *cobra.Command) *diag.Reporter {
	r := &diag.Reporter{Out: cmd.ErrOrStderr()}
	if a.cfg != nil {
		r.Color = a.cfg.Color
		r.Context = a.cfg.ContextLines
	}
	return r
}

// fail reports err against src and returns errReported.
func (a *app) fail(cmd *cobra.Command, src string, err error) error {
	a.log.Info("failed", "error", err)
	a.reporter(cmd).Report(src, err)
	return errReported
}

// readSource reads the file at path, rejecting files over the configured
// size limit.
func (a *app) readSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	limit := a.cfg.MaxSourceBytes
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%s: source exceeds %d bytes", path, limit)
	}

	a.log.Debug("file read", "path", path, "bytes", len(data))
	return string(data), nil
}
