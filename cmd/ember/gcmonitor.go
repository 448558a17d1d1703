package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ember"
	"ember/internal/gc"
	"ember/internal/ui"
)

var gcMonitorCmd = &cobra.Command{
	Use:   "gc-monitor <file>",
	Short: "Run a program with a live view of its collector",
	Args:  cobra.ExactArgs(1),
	RunE:  runGCMonitor,
}

func runGCMonitor(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	v := ember.NewVM(cfg, os.Stdout)
	defer v.Close()

	events := make(chan gc.Stats, 16)
	v.Heap().SetCollectHook(func(s gc.Stats) {
		events <- s
	})

	model := ui.NewGCMonitorModel(args[0], events)
	program := tea.NewProgram(model)

	done := make(chan error, 1)
	go func() {
		_, _, err := v.Interpret(string(src))
		close(events)
		done <- err
	}()

	if _, err := program.Run(); err != nil {
		return err
	}
	return <-done
}
