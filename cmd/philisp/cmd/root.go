package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version, GitCommit, and BuildDate are overridden at link time via
// -ldflags, mirroring the teacher's cmd/dwscript/cmd/root.go.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool
var trace bool

var rootCmd = &cobra.Command{
	Use:   "philisp",
	Short: "philisp is a small symbolic Lisp-like language runtime",
	Long: `philisp evaluates a tagged, dynamically-typed symbolic language:
a trampolined EVAL/RET/APPLY evaluator over a heap-resident call stack,
first-class continuations, partial application, and a reader/printer
for its S-expression surface syntax.`,
	SilenceUsage: true,
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "trace every EVAL/RET transition to stderr")
	rootCmd.SetVersionTemplate("philisp version {{.Version}}\n")
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "philisp: %s\n", err)
	os.Exit(1)
}
