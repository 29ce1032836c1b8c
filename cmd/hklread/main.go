/*
 * main.go, part of goHKL.
 *
 *
 * Copyright 2024 The goHKL authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Command hklread reads the reflection table of an HKL file and prints it.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	hkl "github.com/rmera/gohkl"
	"github.com/rmera/gohkl/histo"
	"github.com/rmera/gohkl/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes.
const (
	exitOK = iota
	exitUsage
	exitSourceUnavailable
	exitHeaderNotFound
	exitReadFailure
)

// exitError carries the exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageError(format string, a ...any) error {
	return &exitError{exitUsage, fmt.Errorf(format, a...)}
}

type options struct {
	configPath string
	strict     bool
	summary    bool
	shells     int
	format     string
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := new(options)
	var logger *zap.Logger
	cmd := &cobra.Command{
		Use:   "hklread [flags] <filename.hkl>",
		Short: "Read the reflection table of an HKL file",
		Long: `hklread reads the reflections (h, k, l, multiplicity, d-spacing and |Fc|^2)
listed after the "# H   K   L     Mult    dspc                   |Fc|^2" header
of an HKL file, and prints them. Files ending in .hkl.gz or .hkl.zst are
decompressed on the fly.

Example:
  hklread EntryWithCollCode176.hkl`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError("expected exactly one file name, got %d arguments", len(args))
			}
			if !hkl.HasExtension(args[0]) {
				return usageError("file must have .hkl extension: %s", args[0])
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return usageError("%v", err)
			}
			logger, err = newLogger(stderr, cfg.LogLevel, opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger.Debug("Configuration loaded", zap.String("path", opts.configPath), zap.Any("config", cfg))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(stdout, logger, opts, args[0])
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	f.BoolVar(&opts.strict, "strict", false, "fail on the first malformed data line instead of dropping it")
	f.BoolVar(&opts.summary, "summary", false, "print summary statistics after the reflections")
	f.IntVar(&opts.shells, "shells", 0, "print the multiplicity in this many resolution shells")
	f.StringVar(&opts.format, "format", config.FormatTable, "output format: table, hkl or json")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// loadConfig reads the configuration file, if any, and overrides its values with the
// flags that were explicitly set. opts is updated with the final values.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("strict") {
		cfg.Strict = opts.strict
	}
	if f.Changed("summary") {
		cfg.Summary = opts.summary
	}
	if f.Changed("shells") {
		cfg.Shells = opts.shells
	}
	if f.Changed("format") {
		cfg.Format = opts.format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts.strict, opts.summary, opts.shells, opts.format = cfg.Strict, cfg.Summary, cfg.Shells, cfg.Format
	return cfg, nil
}

func newLogger(w io.Writer, level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

func run(stdout io.Writer, logger *zap.Logger, opts *options, name string) error {
	refl, info, err := hkl.FileReadInfo(name, opts.strict)
	switch {
	case errors.Is(err, hkl.ErrSourceUnavailable):
		return &exitError{exitSourceUnavailable, fmt.Errorf("could not open file %s: %w", name, err)}
	case errors.Is(err, hkl.ErrHeaderNotFound):
		return &exitError{exitHeaderNotFound, fmt.Errorf("could not find the expected header in the file %s", name)}
	case err != nil:
		return &exitError{exitReadFailure, err}
	}
	logger.Info("Read reflections", zap.String("file", name), zap.Int("reflections", len(refl)),
		zap.Int("header_line", info.HeaderLine), zap.Int("lines", info.Lines))
	if len(info.Dropped) > 0 {
		logger.Warn("Dropped malformed lines", zap.String("file", name), zap.Ints("lines", info.Dropped))
	}
	if err := report(stdout, logger, opts, name, refl); err != nil {
		return &exitError{exitReadFailure, fmt.Errorf("failed to write output: %w", err)}
	}
	return nil
}

type shellRow struct {
	DLow  float64 `json:"d_low"`
	DHigh float64 `json:"d_high"`
	Mult  float64 `json:"multiplicity"`
}

// shellRows converts the 1/d^2 dividers of a shell histogram into d-spacing ranges.
func shellRows(sh *histo.Data) []shellRow {
	div := sh.Dividers()
	rows := make([]shellRow, 0, sh.Len())
	for i, v := range sh.View() {
		rows = append(rows, shellRow{DLow: 1 / math.Sqrt(div[i]), DHigh: 1 / math.Sqrt(div[i+1]), Mult: v})
	}
	return rows
}

func report(w io.Writer, logger *zap.Logger, opts *options, name string, refl hkl.Reflections) error {
	var summary *hkl.Summary
	var shells []shellRow
	if opts.summary || opts.shells > 0 {
		var err error
		summary, err = hkl.Summarize(refl)
		if err != nil {
			logger.Warn("No statistics for an empty set", zap.String("file", name))
		} else if opts.shells > 0 {
			sh, err := hkl.Shells(refl, opts.shells)
			if err != nil {
				logger.Warn("Could not compute resolution shells", zap.Error(err))
			} else {
				shells = shellRows(sh)
			}
		}
	}
	switch opts.format {
	case config.FormatJSON:
		out := struct {
			File        string          `json:"file"`
			Count       int             `json:"count"`
			Reflections hkl.Reflections `json:"reflections"`
			Summary     *hkl.Summary    `json:"summary,omitempty"`
			Shells      []shellRow      `json:"shells,omitempty"`
		}{name, len(refl), refl, nil, shells}
		if opts.summary {
			out.Summary = summary
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case config.FormatHKL:
		//extra output would break the table, so it goes to the log.
		if opts.summary && summary != nil {
			logger.Info("Summary", zap.Any("summary", summary))
		}
		if shells != nil {
			logger.Info("Resolution shells", zap.Any("shells", shells))
		}
		return hkl.Write(w, refl)
	}
	if err := hkl.PrintTable(w, refl); err != nil {
		return err
	}
	if opts.summary && summary != nil {
		fmt.Fprintf(w, "\n%s\n", summary)
	}
	if shells != nil {
		fmt.Fprintf(w, "\n%10s %10s %12s\n", "d_low", "d_high", "multiplicity")
		for _, v := range shells {
			fmt.Fprintf(w, "%10.4f %10.4f %12g\n", v.DLow, v.DHigh, v.Mult)
		}
	}
	return nil
}

// execute runs the command with args and returns the exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	var e *exitError
	if !errors.As(err, &e) {
		//cobra's own errors, such as unknown flags.
		fmt.Fprintln(stderr, cmd.UsageString())
		return exitUsage
	}
	if e.code == exitUsage {
		fmt.Fprintln(stderr, cmd.UsageString())
	}
	return e.code
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
