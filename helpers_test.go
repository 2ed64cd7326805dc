package sigstub_test

import "github.com/fwojciec/sigstub"

// countWarnings returns the number of warnings of the given kind.
func countWarnings(ws sigstub.Warnings, kind sigstub.WarningKind) int {
	n := 0
	for _, w := range ws {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
