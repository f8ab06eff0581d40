package cmd

import (
	"fmt"
	"os"

	"github.com/philisp-go/philisp/internal/config"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/pkg/philisp"
	"github.com/spf13/cobra"
)

var (
	evalExpr    string
	noPrelude   bool
	runMaxDepth int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a philisp file or expression",
	Long: `Evaluate a philisp program from a file or inline expression.

Examples:
  # Run a script file
  philisp run script.phl

  # Evaluate an inline expression
  philisp run -e "(print (+ 1 2))"

  # Trace every EVAL/RET transition
  philisp run --trace script.phl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&noPrelude, "no-prelude", false, "skip loading .philisp.yaml's prelude files")
	runCmd.Flags().IntVar(&runMaxDepth, "max-depth", 0, "override the evaluator's call-stack depth bound (0: use the config/default)")
}

func runScript(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := []philisp.Option{}
	if trace {
		opts = append(opts, philisp.WithTrace(os.Stderr))
	}
	depth := runMaxDepth
	if depth == 0 {
		depth = cfg.MaxDepth
	}
	if depth > 0 {
		opts = append(opts, philisp.WithMaxDepth(depth))
	}

	rt, err := philisp.New(opts...)
	if err != nil {
		return fmt.Errorf("initializing runtime: %w", err)
	}

	if !noPrelude {
		for _, path := range cfg.Prelude {
			if verbose {
				fmt.Fprintf(os.Stderr, "loading prelude: %s\n", path)
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("loading prelude %s: %w", path, err)
			}
			if _, err := rt.Eval(string(content)); err != nil {
				return fmt.Errorf("evaluating prelude %s: %w", path, err)
			}
		}
	}

	var result object.Value
	switch {
	case evalExpr != "":
		result, err = rt.Eval(evalExpr)
	case len(args) == 1:
		content, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return fmt.Errorf("reading %s: %w", args[0], rerr)
		}
		result, err = rt.Eval(string(content))
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "=> %s\n", rt.Print(result))
	}
	return nil
}
