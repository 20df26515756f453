package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"snapshot-matcher/internal/compare"
	"snapshot-matcher/internal/diff"
	"snapshot-matcher/internal/encode"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <snapshot-file> [value.json|-]",
		Short: "Compare a JSON value with an existing snapshot",
		Long: `Decode a JSON value from a file (or stdin), encode it canonically in the
snapshot's format and compare it line by line with the snapshot file.
The snapshot is never created or modified. Exits 1 on mismatch.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapPath := args[0]
			input := "-"
			if len(args) == 2 {
				input = args[1]
			}

			// A known snapshot extension wins over the configured format.
			enc, err := encode.ForFormat(opts.cfg.Format)
			if err != nil {
				return err
			}
			if ext := filepath.Ext(snapPath); ext != "" {
				if byExt, err := encode.ForFormat(ext); err == nil {
					enc = byExt
				}
			}

			raw, err := readInput(cmd, input)
			if err != nil {
				return fmt.Errorf("reading value: %w", err)
			}
			value, err := decodeValue(raw, enc)
			if err != nil {
				return fmt.Errorf("decoding value: %w", err)
			}

			c := compare.New(enc)
			c.Out = cmd.OutOrStdout()
			c.Unified = opts.cfg.Report.Unified
			c.Diff = diff.Options{Context: opts.cfg.Report.Context, MaxBytes: opts.cfg.Report.MaxBytes}

			res := c.Compare(value, snapPath)
			if res.Passed {
				fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", snapPath)
				return nil
			}
			if res.Report != "" {
				return errMismatch
			}
			return res.Err
		},
	}
}

// decodeValue parses JSON input. Numbers stay json.Number for JSON output so
// large integers survive unchanged; YAML output gets plain float64s.
func decodeValue(raw []byte, enc encode.Encoder) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if enc.Name() == "json" {
		dec.UseNumber()
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
