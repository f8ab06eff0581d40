package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/philisp-go/philisp/internal/config"
	"github.com/philisp-go/philisp/pkg/philisp"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive philisp read-eval-print loop",
	Long: `Start an interactive session: each line is read, evaluated under
a single persisted global environment, and its printed result shown,
the same top-level loop a script run shares.`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts []philisp.Option
	if trace {
		opts = append(opts, philisp.WithTrace(os.Stderr))
	}
	if cfg.MaxDepth > 0 {
		opts = append(opts, philisp.WithMaxDepth(cfg.MaxDepth))
	}

	rt, err := philisp.New(opts...)
	if err != nil {
		return fmt.Errorf("initializing runtime: %w", err)
	}

	for _, path := range cfg.Prelude {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("loading prelude %s: %w", path, err)
		}
		if _, err := rt.Eval(string(content)); err != nil {
			return fmt.Errorf("evaluating prelude %s: %w", path, err)
		}
	}

	in := bufio.NewReader(os.Stdin)
	fmt.Fprint(os.Stdout, "philisp> ")
	for {
		line, err := in.ReadString('\n')
		atEOF := err == io.EOF
		if err != nil && !atEOF {
			return err
		}

		if line != "" {
			result, evalErr := rt.Eval(line)
			if evalErr != nil {
				fmt.Fprintf(os.Stdout, "error: %s\n", evalErr)
			} else {
				fmt.Fprintln(os.Stdout, rt.Print(result))
			}
		}

		if atEOF {
			fmt.Fprintln(os.Stdout)
			return nil
		}
		fmt.Fprint(os.Stdout, "philisp> ")
	}
}
