package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ember"
	"ember/internal/config"
)

var testCmd = &cobra.Command{
	Use:   "test <dir>",
	Short: "Run every *.ember fixture in a directory, each on its own VM",
	Args:  cobra.ExactArgs(1),
	RunE:  runTest,
}

func init() {
	testCmd.Flags().Int("jobs", 0, "max concurrent VMs (0 = GOMAXPROCS)")
}

// fixtureResult is one file's outcome. Index-addressed, like the
// teacher's parallel directory walkers, so goroutines never need a
// mutex to report back.
type fixtureResult struct {
	Path   string
	Result ember.Result
	Err    error
}

// runTest spawns one independent *vm.VM per fixture file, concurrently,
// via golang.org/x/sync/errgroup — the §5 expansion: concurrency across
// isolated interpreters, never within one VM's single-threaded loop.
func runTest(cmd *cobra.Command, args []string) error {
	files, err := listEmberFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no *.ember fixtures found")
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]fixtureResult, len(files))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = runFixture(path, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return reportFixtures(cmd.OutOrStdout(), results)
}

func runFixture(path string, cfg config.Config) fixtureResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return fixtureResult{Path: path, Err: err}
	}
	v := ember.NewVM(cfg, io.Discard)
	defer v.Close()

	result, _, runErr := v.Interpret(string(src))
	return fixtureResult{Path: path, Result: result, Err: runErr}
}

func reportFixtures(w io.Writer, results []fixtureResult) error {
	failed := 0
	for _, r := range results {
		status := "ok"
		if r.Result != ember.Ok || r.Err != nil {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%-6s %s\n", status, r.Path)
	}
	fmt.Fprintf(w, "%d/%d passed\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d fixture(s) failed", failed)
	}
	return nil
}

func listEmberFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".ember") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
