package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
)

var flagNoSolve bool

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check level files for mistakes",
	Long: `Parse and check every level file in a directory, or the built-in
levels when no directory is given. Each level is also run through the
solver unless --no-solve is set.

Exits with an error if any file is invalid or unsolvable.

Examples:
  watersort validate
  watersort validate ./my-levels
  watersort validate ./my-levels --no-solve`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&flagNoSolve, "no-solve", false, "Skip the solvability check")
}

func runValidate(_ *cobra.Command, args []string) error {
	loader := levels.Embedded()
	source := "built-in levels"
	if len(args) == 1 {
		loader = levels.NewLoader(args[0])
		source = args[0]
	}

	results, err := loader.Scan()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Printf("No level files found in %s.\n", source)
		return nil
	}

	fmt.Printf("Checking %d files in %s\n\n", len(results), source)

	failed := 0
	seen := make(map[string]string)
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("  FAIL  %s\n        %v\n", r.Path, r.Err)
			continue
		}
		if prev, dup := seen[r.Level.ID]; dup {
			failed++
			fmt.Printf("  FAIL  %s\n        %v\n", r.Path, levels.ValidationError{
				Code:    levels.CodeDuplicateID,
				Message: fmt.Sprintf("id %q already used by %s", r.Level.ID, prev),
			})
			continue
		}
		seen[r.Level.ID] = r.Path

		status := "ok"
		if !flagNoSolve {
			sol, serr := levels.CheckSolvable(r.Level, core.DefaultSearchLimit)
			switch {
			case errors.Is(serr, core.ErrSearchLimit):
				status = "ok (solver gave up)"
			case serr != nil:
				failed++
				fmt.Printf("  FAIL  %s\n        %v\n", r.Path, serr)
				continue
			default:
				status = fmt.Sprintf("ok, %d moves", len(sol.Moves))
			}
		}
		fmt.Printf("  OK    %s (%s: %s)\n", r.Path, r.Level.ID, status)
		for _, w := range levels.Warnings(r.Level) {
			fmt.Printf("  WARN  %s\n        %v\n", r.Path, w)
		}
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d of %d level files failed", failed, len(results))
	}
	fmt.Println("All levels valid.")
	return nil
}
