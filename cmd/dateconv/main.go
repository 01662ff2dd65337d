package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alpacahq/dateconv"
)

var (
	inPattern  string
	outPattern string
	verbose    bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "dateconv [date ...]",
		Short: "Convert calendar dates between textual formats",
		Long: `Convert calendar dates between textual formats.

Dates are read from the arguments, or from stdin one per line when no
arguments are given. Without --in the input must be ISO-8601 (2006-01-02);
without --out the output is ISO-8601. Patterns use java.time style letters,
e.g. "uuuu/MM/dd" or "MMM d, uuuu".`,
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().StringVarP(&inPattern, "in", "i", os.Getenv("DATECONV_IN"), "pattern the input dates are written in")
	cmd.Flags().StringVarP(&outPattern, "out", "o", os.Getenv("DATECONV_OUT"), "pattern to render the dates with")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each conversion")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var inFmt, outFmt *dateconv.Formatter
	if inPattern != "" {
		if inFmt, err = dateconv.CompilePattern(inPattern); err != nil {
			logger.Error("bad input pattern", zap.String("pattern", inPattern), zap.Error(err))
			return err
		}
	}
	if outPattern != "" {
		if outFmt, err = dateconv.CompilePattern(outPattern); err != nil {
			logger.Error("bad output pattern", zap.String("pattern", outPattern), zap.Error(err))
			return err
		}
	}

	convert := func(s string) error {
		var c dateconv.Converter
		if inFmt != nil {
			c, err = dateconv.FromFormat(s, inFmt)
		} else {
			c, err = dateconv.FromString(s)
		}
		if err != nil {
			return err
		}
		out := c.String()
		if outFmt != nil {
			if out, err = c.Format(outFmt); err != nil {
				return err
			}
		}
		logger.Debug("converted", zap.String("in", s), zap.String("out", out))
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	if len(args) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				if err := convert(line); err != nil {
					logger.Error("conversion failed", zap.String("input", line), zap.Error(err))
					return err
				}
			}
		}
		return scanner.Err()
	}
	for _, arg := range args {
		if err := convert(arg); err != nil {
			logger.Error("conversion failed", zap.String("input", arg), zap.Error(err))
			return err
		}
	}
	return nil
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
