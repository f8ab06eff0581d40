package cmd

import (
	"fmt"
	"sort"

	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/pkg/philisp"
	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List every name bound in the standard global environment",
	Long: `Build a fresh runtime with only the standard primitive set
installed and print every globally bound name, alphabetically. Useful
for checking what a given build of philisp provides before writing a
script against it.`,
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}

func runSymbols(_ *cobra.Command, _ []string) error {
	rt, err := philisp.New()
	if err != nil {
		return fmt.Errorf("initializing runtime: %w", err)
	}

	names := rt.Global().Names()
	sort.Strings(names)
	for _, name := range names {
		sym, err := rt.Symbols().Intern(name)
		if err != nil {
			return err
		}
		binding, _ := rt.Global().Lookup(sym)
		kind := "value"
		if object.IsBuiltin(binding.Value) {
			kind = "subr"
		}
		fmt.Printf("%-20s %s\n", name, kind)
	}
	return nil
}
