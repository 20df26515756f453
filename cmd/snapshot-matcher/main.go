// Command snapshot-matcher inspects and checks snapshot directories written
// by the snapshotmatcher test helpers.
//
//	snapshot-matcher list [--root dir] [--json]
//	snapshot-matcher check <snapshot-file> [value.json|-]
//	snapshot-matcher resolve --class pkg --method TestX [--name n] [--count 3]
//
// Settings come from .snapshot.yaml (or --config), SNAPSHOT_* environment
// variables and flags, in increasing priority.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errMismatch) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}
}
