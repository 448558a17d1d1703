package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ember"
	"ember/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive ember session",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

// runRepl reads one line at a time and interprets each on the same VM.
// A line that isBareExpression accepts is wrapped in an implicit print
// so the REPL echoes its value without requiring a trailing semicolon,
// unlike the file-mode driver run.go exercises.
func runRepl(cmd *cobra.Command, args []string) error {
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

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(os.Stdout)
			return nil
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		source := line
		if isBareExpression(line) {
			source = "print " + strings.TrimSuffix(strings.TrimSpace(line), ";") + ";"
		}

		result, bag, runErr := v.Interpret(source)
		if bag.Len() > 0 {
			ui.RenderBag(os.Stderr, bag, mode)
		}
		if result == ember.RuntimeError {
			ui.RenderStackTrace(os.Stderr, runErr, mode)
		}
	}
}

// isBareExpression is a light heuristic, not a parse: a line that does
// not start with a statement keyword (or '{') is treated as an
// expression the REPL should echo. Assignments are not detected, so
// "x = 1" is echoed too.
func isBareExpression(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, kw := range []string{"var ", "if ", "if(", "while ", "while(", "for ", "for(",
		"fun ", "class ", "return", "print ", "switch ", "switch(", "{", "continue"} {
		if strings.HasPrefix(trimmed, kw) {
			return false
		}
	}
	return true
}
