// Package diff computes line-level differences between a stored snapshot and
// a freshly encoded value. It uses github.com/pmezard/go-difflib/difflib both
// for change regions (SequenceMatcher opcodes) and for classic unified
// patches (---/+++ headers, @@ hunks).
package diff

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Kind classifies a change region.
type Kind byte

const (
	Replace Kind = 'r' // lines differ on both sides
	Delete  Kind = 'd' // lines present only in the expected side
	Insert  Kind = 'i' // lines present only in the found side
)

func (k Kind) String() string {
	switch k {
	case Replace:
		return "replace"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// Region is one contiguous span of divergence. Starts are 0-based line
// indexes into the respective input, valid even when the side is empty.
type Region struct {
	Kind          Kind
	ExpectedStart int
	Expected      []string
	FoundStart    int
	Found         []string
}

// Regions returns the ordered change regions between expected and found.
// Identical inputs yield no regions.
func Regions(expected, found []string) []Region {
	// autojunk off: snapshot files routinely repeat lines such as "}," and
	// the heuristic would hide them from matching.
	m := difflib.NewMatcherWithJunk(expected, found, false, nil)
	var out []Region
	for _, op := range m.GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		out = append(out, Region{
			Kind:          Kind(op.Tag),
			ExpectedStart: op.I1,
			Expected:      clone(expected[op.I1:op.I2]),
			FoundStart:    op.J1,
			Found:         clone(found[op.J1:op.J2]),
		})
	}
	return out
}

func clone(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}

// Options controls patch generation behavior.
type Options struct {
	// MaxBytes is a guardrail on input size (old+new). When exceeded,
	// a minimal placeholder patch is returned and oversize=true.
	// 0 means "no limit".
	MaxBytes int

	// Context controls the number of CONTEXT LINES in unified hunks.
	// If 0, default to 3.
	Context int
}

// Unified produces a classic unified patch for a↦b.
// Returns the patch body and a flag indicating it was omitted due to size.
func Unified(aName, bName string, a, b []byte, opt Options) (body string, oversize bool) {
	if opt.MaxBytes > 0 && (len(a)+len(b)) > opt.MaxBytes {
		return omitted(aName, bName), true
	}

	ctx := opt.Context
	if ctx <= 0 {
		ctx = 3
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return omitted(aName, bName), false
	}
	return s, false
}

// splitLinesKeepNL splits into lines and keeps newline characters,
// which produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}

// omitted returns a compact placeholder when size limits are exceeded.
func omitted(aName, bName string) string {
	return fmt.Sprintf("--- %s\n+++ %s\n@@\n# diff omitted (oversize)\n", aName, bName)
}
