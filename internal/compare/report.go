package compare

import (
	"fmt"
	"strings"

	"snapshot-matcher/internal/diff"
)

// FormatReport renders change regions as
//
//	Snapshot mismatch (N differences found):
//	Expected	<stored lines>
//	but found	<actual lines>
//
// with a blank line between regions. Expected is always the stored snapshot
// and found is the freshly encoded value. Returns "" for no regions.
func FormatReport(regions []diff.Region) string {
	if len(regions) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Snapshot mismatch (%d differences found):\n", len(regions))
	for i, r := range regions {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Expected\t<%s>\nbut found\t<%s>",
			strings.Join(r.Expected, "\n"), strings.Join(r.Found, "\n"))
	}
	b.WriteString("\n")
	return b.String()
}
