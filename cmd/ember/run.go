package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember"
	"ember/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and execute an ember program",
	Args:  cobra.ExactArgs(1),
	RunE:  runExecution,
}

func runExecution(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mode, err := colorMode(cmd)
	if err != nil {
		return err
	}

	v := ember.NewVM(cfg, os.Stdout)
	defer v.Close()

	result, bag, runErr := v.Interpret(string(src))
	if bag.Len() > 0 {
		ui.RenderBag(os.Stderr, bag, mode)
	}

	switch result {
	case ember.CompileError:
		os.Exit(65)
	case ember.RuntimeError:
		ui.RenderStackTrace(os.Stderr, runErr, mode)
		os.Exit(70)
	}
	return nil
}
