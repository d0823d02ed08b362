package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vytor/quizflash/internal/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		debugMode bool
		noColor   bool
	)
	rootCommand := &cobra.Command{
		Use:           "srsctl",
		Short:         "Inspect the spaced-repetition scheduler",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logger.INFO
			if debugMode {
				level = logger.DEBUG
			}
			logger.SetDefault(logger.New(logger.WithLevel(level), logger.WithOutput(cmd.ErrOrStderr())))
			if noColor {
				color.NoColor = true
			}
			return nil
		},
	}
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCommand.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCommand.AddCommand(newSimulateCommand())
	return rootCommand
}
