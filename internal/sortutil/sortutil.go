package sortutil

import (
	"path/filepath"
	"sort"
)

// SlashPaths returns a new slice holding the input paths converted to
// forward slashes and sorted lexicographically, so listings are identical
// across platforms. The original slice is not modified.
func SlashPaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}
	sort.Strings(out)
	return out
}
