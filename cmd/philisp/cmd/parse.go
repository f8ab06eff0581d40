package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/printer"
	"github.com/philisp-go/philisp/internal/reader"
	"github.com/spf13/cobra"
)

var parseExpression string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse philisp source without evaluating it",
	Long: `Read every top-level form from a file (or stdin) and print each one
back out, exercising the reader and printer without the evaluator.

If no file is provided, reads from stdin. Use -e to parse a single
expression from the command line instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpression, "expression", "e", "", "parse an expression given on the command line")
}

func runParse(_ *cobra.Command, args []string) error {
	var src io.Reader
	switch {
	case parseExpression != "":
		src = strings.NewReader(parseExpression)
	case len(args) == 1:
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		src = f
	default:
		src = os.Stdin
	}

	symtab := object.NewSymbolTable()
	rd := reader.New(src, symtab)

	for {
		form, err := rd.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(printer.Print(form))
	}
}
