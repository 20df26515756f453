// Package compare implements create-or-compare semantics for snapshot files.
//
// The first evaluation of a path writes the encoded value and passes.
// Later evaluations encode the value again, diff it line by line against the
// stored file and fail with a report on any difference. I/O failures never
// escape as panics or returned errors: they become a failed Result and an
// error log line.
package compare

import (
	"fmt"
	"io"
	"os"

	"snapshot-matcher/internal/diff"
	"snapshot-matcher/internal/encode"
	"snapshot-matcher/internal/log"
	"snapshot-matcher/internal/store"
	"snapshot-matcher/internal/textutil"
)

// Result is the verdict of one evaluation.
type Result struct {
	Passed  bool
	Created bool // a new snapshot file was written
	Path    string
	Regions []diff.Region
	// Report is the mismatch report; empty unless the comparison found
	// differences.
	Report string
	// Err is a *WriteError, *ReadError or *MismatchError when Passed is false.
	Err error
}

// Comparator evaluates values against snapshot files.
type Comparator struct {
	Encoder encode.Encoder
	// Out receives mismatch reports as they happen; nil discards them.
	Out io.Writer
	// Unified appends a unified diff (snapshot → actual) to reports.
	Unified bool
	Diff    diff.Options
}

// New returns a comparator that prints reports to stdout.
func New(enc encode.Encoder) *Comparator {
	if enc == nil {
		enc = encode.JSON{}
	}
	return &Comparator{Encoder: enc, Out: os.Stdout}
}

// Evaluate creates the snapshot at path when it is absent and otherwise
// compares value against it.
func (c *Comparator) Evaluate(value any, path string) Result {
	ok, err := store.Exists(path)
	if err != nil {
		return c.readFailed(path, err)
	}
	if ok {
		return c.Compare(value, path)
	}
	return c.create(value, path)
}

func (c *Comparator) create(value any, path string) Result {
	data, err := c.Encoder.Encode(value)
	if err == nil {
		err = store.Create(path, data)
	}
	if err != nil {
		werr := &WriteError{Path: path, Err: err}
		log.Error("could not create new snapshot", "path", path, "error", err)
		return Result{Path: path, Err: werr}
	}
	log.Info("wrote new snapshot", "path", path, "format", c.Encoder.Name())
	return Result{Passed: true, Created: true, Path: path}
}

// Compare diffs value against the existing snapshot at path. It never
// creates files; a missing snapshot is a read failure.
func (c *Comparator) Compare(value any, path string) Result {
	data, err := c.Encoder.Encode(value)
	if err != nil {
		return c.readFailed(path, err)
	}
	stored, err := store.Read(path)
	if err != nil {
		return c.readFailed(path, err)
	}

	regions := diff.Regions(textutil.Lines(stored), textutil.Lines(data))
	if len(regions) == 0 {
		log.Debug("snapshot matched", "path", path)
		return Result{Passed: true, Path: path}
	}

	report := FormatReport(regions)
	if c.Unified {
		body, _ := diff.Unified(path, "actual", textutil.NormalizeUTF8LF(stored), data, c.Diff)
		report += "\n" + body
	}
	if c.Out != nil {
		fmt.Fprint(c.Out, report)
	}
	log.Debug("snapshot mismatch", "path", path, "regions", len(regions))
	return Result{
		Path:    path,
		Regions: regions,
		Report:  report,
		Err:     &MismatchError{Path: path, Regions: regions},
	}
}

func (c *Comparator) readFailed(path string, err error) Result {
	log.Error("could not compare snapshot", "path", path, "error", err)
	return Result{Path: path, Err: &ReadError{Path: path, Err: err}}
}
