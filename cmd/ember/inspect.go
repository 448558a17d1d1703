package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember"
	"ember/internal/gc"
	"ember/internal/snapshot"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Run a program and write a heap snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Bool("after-gc", false, "stop after the first collection cycle instead of running to completion")
	inspectCmd.Flags().StringP("output", "o", "", "write the snapshot here instead of stdout")
}

func runInspect(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	afterGC, err := cmd.Flags().GetBool("after-gc")
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	v := ember.NewVM(cfg, os.Stdout)
	defer v.Close()

	var snap snapshot.Snapshot
	if afterGC {
		// SetCollectHook fires synchronously inside the VM's own
		// goroutine at the end of a cycle, with gc.Stats already a
		// fresh, independently-owned copy (Heap.Stats builds its own
		// CountByKind map per call) — safe to read here with no
		// further synchronization needed.
		first := make(chan gc.Stats, 1)
		v.Heap().SetCollectHook(func(s gc.Stats) {
			select {
			case first <- s:
			default:
			}
		})
		go func() { _, _, _ = v.Interpret(string(src)) }()
		snap = snapshot.FromStats(<-first)
	} else {
		if _, _, err := v.Interpret(string(src)); err != nil {
			// A runtime error still leaves a heap worth inspecting.
			_ = err
		}
		snap = snapshot.FromStats(v.Heap().Stats())
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return snapshot.Write(out, snap)
}
