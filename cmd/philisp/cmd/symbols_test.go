package cmd

import (
	"strings"
	"testing"
)

func TestRunSymbolsListsCarAndSortsAlphabetically(t *testing.T) {
	out := captureStdout(t, func() {
		if err := runSymbols(symbolsCmd, nil); err != nil {
			t.Fatalf("runSymbols: %v", err)
		}
	})

	if !strings.Contains(out, "car") {
		t.Fatalf("expected the standard environment's car binding to be listed, got:\n%s", out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	names := make([]string, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			t.Fatalf("malformed symbols line: %q", line)
		}
		names[i] = fields[0]
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("expected alphabetical order, got %q before %q", names[i-1], names[i])
		}
	}
}

func TestRunSymbolsAnnotatesBuiltinsAsSubr(t *testing.T) {
	out := captureStdout(t, func() {
		if err := runSymbols(symbolsCmd, nil); err != nil {
			t.Fatalf("runSymbols: %v", err)
		}
	})

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if strings.HasPrefix(line, "car ") {
			if !strings.Contains(line, "subr") {
				t.Fatalf("expected car to be annotated as a subr, got %q", line)
			}
			return
		}
	}
	t.Fatal("car was not found in the symbols listing")
}
