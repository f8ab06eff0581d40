package philisp

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// TestEndToEndScenarios runs the eight numbered input/expected-output
// scenarios (spec.md §8) and snapshots each one's printed result with
// go-snaps, mirroring the teacher's own fixture_test.go use of
// snaps.MatchSnapshot for golden interpreter output.
func TestEndToEndScenarios(t *testing.T) {
	scenarios := []struct {
		name   string
		source string
	}{
		{"sum_of_integers", "(+ 1 2 3)"},
		{"mixed_integer_float_sum", "(+ 1 2.0)"},
		{"function_application", "((fn (x y) (+ x y)) 10 32)"},
		{"global_recursive_factorial", "(bind! 'fact (fn (n) (if (<= n 1) 1 (* n (fact (- n 1)))))) (fact 5)"},
		{"call_cc_early_return", "(+ 1 (call-cc (fn (k) (+ 10 (k 41)))))"},
		{"print_escaped_string", `(print "he\"llo")`},
		{"quoted_parameter_sees_unevaluated_form", "((fn ((eval x)) x) (+ 1 2))"},
		{"string_aref_yields_character", `(aref "abc" 1)`},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			rt, err := New()
			require.NoError(t, err)

			v, err := rt.Eval(sc.source)
			require.NoError(t, err)

			snaps.MatchSnapshot(t, sc.name, rt.Print(v))
		})
	}
}
