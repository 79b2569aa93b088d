package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/kinoko/internal/config"
	"github.com/you-not-fish/kinoko/internal/repl"
	"github.com/you-not-fish/kinoko/internal/syntax"
)

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token table of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			src, err := a.readSource(filename)
			if err != nil {
				return err
			}

			toks, err := syntax.Tokenize(filename, src)
			if err != nil {
				return a.fail(cmd, src, err)
			}
			a.log.Info("tokenized", "path", filename, "tokens", len(toks))

			syntax.FprintTokens(cmd.OutOrStdout(), toks)
			return nil
		},
	}
}

func (a *app) parseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				a.cfg.Format = format
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			filename := args[0]
			src, err := a.readSource(filename)
			if err != nil {
				return err
			}

			root, err := syntax.ParseSource(filename, src)
			if err != nil {
				return a.fail(cmd, src, err)
			}
			a.log.Info("parsed", "path", filename, "declarations", len(root.Children))

			out := cmd.OutOrStdout()
			switch a.cfg.Format {
			case config.FormatJSON:
				return syntax.FprintJSON(out, root)
			case config.FormatYAML:
				return syntax.FprintYAML(out, root)
			default:
				syntax.Fprint(out, root)
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatText, "output format: text, json or yaml")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Parse files and report ok or the first error of each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, filename := range args {
				if !a.checkFile(cmd, filename) {
					failed++
				}
			}

			a.log.Info("check done", "files", len(args), "failed", failed)
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}
}

// checkFile parses one file for check and reports the outcome.
func (a *app) checkFile(cmd *cobra.Command, filename string) bool {
	src, err := a.readSource(filename)
	if err != nil {
		a.fail(cmd, "", err)
		return false
	}

	root, err := syntax.ParseSource(filename, src)
	if err != nil {
		a.fail(cmd, src, err)
		return false
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok: %d declarations\n", filename, len(root.Children))
	return true
}

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl [FILE]",
		Short: "Edit source interactively with live tokens and tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := repl.Config{
				Color:   a.cfg.Color,
				Context: a.cfg.ContextLines,
			}
			if len(args) == 1 {
				src, err := a.readSource(args[0])
				if err != nil {
					return err
				}
				cfg.Filename = args[0]
				cfg.Source = src
			}

			a.log.Debug("repl started", "path", cfg.Filename)
			return repl.Run(cfg)
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kinokoc version %s\n", Version)
			fmt.Fprintf(out, "go version %s\n", runtime.Version())
		},
	}
}
