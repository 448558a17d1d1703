package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/compiler"
	"ember/internal/debug"
	"ember/internal/diag"
	"ember/internal/gc"
	"ember/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Compile an ember program without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().Bool("disassemble", false, "print the compiled chunk's disassembly")
}

func runBuild(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	disassemble, err := cmd.Flags().GetBool("disassemble")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mode, err := colorMode(cmd)
	if err != nil {
		return err
	}

	heap := gc.New(gc.Config{
		InitialHeapBytes: cfg.GC.InitialHeapBytes,
		GrowFactor:       cfg.GC.GrowFactor,
		Stress:           cfg.GC.Stress,
	})
	bag := diag.NewBag(cfg.Diag.MaxDiagnostics)

	fn, ok := compiler.Compile(string(src), heap, bag)
	if bag.Len() > 0 {
		ui.RenderBag(os.Stderr, bag, mode)
	}
	if !ok {
		os.Exit(65)
	}

	if disassemble {
		debug.DisassembleFunction(os.Stdout, fn)
	}
	return nil
}
