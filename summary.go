package sigstub

import (
	"fmt"
	"sort"
	"strings"
)

// Summary counts the outcome of a batch run.
type Summary struct {
	Pages    int
	Stubs    int
	Failed   int
	Warnings map[WarningKind]int
}

// Record adds one page outcome to the summary.
func (s *Summary) Record(err error, ws Warnings) {
	s.Pages++
	if err != nil {
		s.Failed++
	} else {
		s.Stubs++
	}
	if s.Warnings == nil {
		s.Warnings = make(map[WarningKind]int)
	}
	for _, w := range ws {
		s.Warnings[w.Kind]++
	}
}

// FormatSummary renders a one-line-per-fact report of the run.
func FormatSummary(s *Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d pages: %d stubs, %d failed\n", s.Pages, s.Stubs, s.Failed)

	kinds := make([]string, 0, len(s.Warnings))
	for k := range s.Warnings {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&b, "  %-20s %d\n", k, s.Warnings[WarningKind(k)])
	}
	return b.String()
}
