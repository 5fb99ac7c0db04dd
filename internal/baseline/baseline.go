// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package baseline compares a rendered definition list with a committed
// baseline file and writes baselines atomically.
package baseline

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// ErrNoBaseline is returned when the baseline file does not exist.
var ErrNoBaseline = errors.New("baseline not found")

// Result is the outcome of a comparison.
type Result struct {
	Equal   bool
	Added   int    // Lines present only in the current list
	Removed int    // Lines present only in the baseline
	Diff    string // Unified diff from baseline to current, "" when equal
}

// Check compares current with the baseline stored at path.
func Check(path, current string) (Result, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("%w: %s", ErrNoBaseline, path)
	}
	if err != nil {
		return Result{}, fmt.Errorf("reading baseline: %w", err)
	}
	return Compare(path, string(data), current), nil
}

// Compare diffs two texts line by line. name labels the diff headers.
func Compare(name, baseline, current string) Result {
	if baseline == current {
		return Result{Equal: true}
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(baseline, current)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []lineOp
	res := Result{}
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			ops = append(ops, lineOp{kind: d.Type, text: line})
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				res.Added++
			case diffmatchpatch.DiffDelete:
				res.Removed++
			}
		}
	}
	res.Equal = res.Added == 0 && res.Removed == 0
	if !res.Equal {
		res.Diff = unified(name, ops)
	}
	return res
}

type lineOp struct {
	kind diffmatchpatch.Operation
	text string
}

// splitLines splits text after each newline. A final line without a
// newline is kept.
func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// unified renders ops as a unified diff with contextLines of context.
func unified(name string, ops []lineOp) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s (baseline)\n+++ %s (current)\n", name, name)

	for start := 0; start < len(ops); {
		first := nextChange(ops, start)
		if first < 0 {
			break
		}
		// Extend the hunk while changes are close enough to share context.
		lo := max(first-contextLines, start)
		hi := first
		for {
			end := hi
			for end < len(ops) && ops[end].kind != diffmatchpatch.DiffEqual {
				end++
			}
			next := nextChange(ops, end)
			if next < 0 || next-end > 2*contextLines {
				hi = min(end+contextLines, len(ops))
				break
			}
			hi = next
		}
		writeHunk(&b, ops, lo, hi)
		start = hi
	}
	return b.String()
}

func nextChange(ops []lineOp, from int) int {
	for i := from; i < len(ops); i++ {
		if ops[i].kind != diffmatchpatch.DiffEqual {
			return i
		}
	}
	return -1
}

func writeHunk(b *strings.Builder, ops []lineOp, lo, hi int) {
	oldStart, newStart := 1, 1
	for _, op := range ops[:lo] {
		if op.kind != diffmatchpatch.DiffInsert {
			oldStart++
		}
		if op.kind != diffmatchpatch.DiffDelete {
			newStart++
		}
	}
	var oldLen, newLen int
	var body strings.Builder
	for _, op := range ops[lo:hi] {
		prefix := " "
		switch op.kind {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
			newLen++
		case diffmatchpatch.DiffDelete:
			prefix = "-"
			oldLen++
		default:
			oldLen++
			newLen++
		}
		body.WriteString(prefix + op.text)
		if !strings.HasSuffix(op.text, "\n") {
			body.WriteString("\n\\ No newline at end of file\n")
		}
	}
	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldLen, newStart, newLen)
	b.WriteString(body.String())
}
