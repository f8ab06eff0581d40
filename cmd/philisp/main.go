// Command philisp is the CLI front end for the philisp runtime:
// running scripts, an interactive REPL, parsing without evaluating,
// and listing the global environment's bindings, modeled on the teacher's
// cmd/dwscript/cmd package layout.
package main

import "github.com/philisp-go/philisp/cmd/philisp/cmd"

func main() {
	cmd.Execute()
}
